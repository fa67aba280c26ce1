package feed

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sa6mwa/podfeeds/internal/app/model"
)

func testShow(formats []string, episodes ...model.Episode) *model.Show {
	return &model.Show{
		Title:          "Kernel Hour",
		Description:    "Talk about kernels.",
		Subtitle:       "Kernels",
		Author:         "Jane Doe",
		AuthorEmail:    "jane@example.com",
		Website:        "https://example.com",
		Language:       "en",
		Copyright:      "2026 Jane Doe",
		Webmaster:      "web@example.com",
		ManagingEditor: "jane@example.com",
		Formats:        formats,
		HostingBaseURL: "https://cdn.example.com/pod/",
		Keywords:       []string{"linux", "kernel"},
		Logo:           model.Logo{URL: "https://example.com/logo.png"},
		Category:       "Technology",
		Subcategories:  []string{"Software How-To"},
		Episodes:       episodes,
	}
}

func testEpisode(title string, files ...string) model.Episode {
	return model.Episode{
		Title:       title,
		Description: title + " description",
		Files:       files,
		Duration:    model.ItunesDuration{Duration: 61 * time.Minute},
		PublishDate: "Mon, 02 Jan 2006 15:04:05 +0000",
	}
}

func enclosures(d Document) []string {
	var urls []string
	for _, item := range d.Rss.Channel.Items {
		urls = append(urls, item.Enclosure.URL)
	}
	return urls
}

func TestGenerateOneDocumentPerFormat(t *testing.T) {
	show := testShow([]string{"mp3", "m4a"}, testEpisode("Episode 1", "ep1.mp3", "ep1.m4a"))
	result := Generate(show)
	if diff := cmp.Diff([]string{"m4a", "mp3"}, result.Formats()); diff != "" {
		t.Fatalf("formats mismatch (-want +got):\n%s", diff)
	}
	if len(result.Rejections) != 0 {
		t.Errorf("expected no rejections, got %v", result.Rejections)
	}
	mp3 := result.Documents["mp3"]
	m4a := result.Documents["m4a"]
	if diff := cmp.Diff([]string{"https://cdn.example.com/pod/ep1.mp3"}, enclosures(mp3)); diff != "" {
		t.Errorf("mp3 enclosures mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"https://cdn.example.com/pod/ep1.m4a"}, enclosures(m4a)); diff != "" {
		t.Errorf("m4a enclosures mismatch (-want +got):\n%s", diff)
	}
	if mp3.Rss.Channel.Items[0].Enclosure.Type != "audio/mpeg" {
		t.Errorf("unexpected mp3 enclosure type %q", mp3.Rss.Channel.Items[0].Enclosure.Type)
	}
	if m4a.Rss.Channel.Items[0].Enclosure.Type != "audio/mp4" {
		t.Errorf("unexpected m4a enclosure type %q", m4a.Rss.Channel.Items[0].Enclosure.Type)
	}
	// Both documents share the same channel header.
	a, b := mp3.Rss.Channel, m4a.Rss.Channel
	a.Items, b.Items = nil, nil
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("channel headers differ between formats (-mp3 +m4a):\n%s", diff)
	}
}

func TestGenerateDuplicateFormatKeepsFirst(t *testing.T) {
	show := testShow([]string{"mp3"},
		testEpisode("Episode 1", "first.mp3", "second.mp3"),
		testEpisode("Episode 2", "ep2.mp3", "ep2.mp3"),
	)
	result := Generate(show)
	if diff := cmp.Diff([]string{
		"https://cdn.example.com/pod/first.mp3",
		"https://cdn.example.com/pod/ep2.mp3",
	}, enclosures(result.Documents["mp3"])); diff != "" {
		t.Errorf("enclosures mismatch (-want +got):\n%s", diff)
	}
	if len(result.Rejections) != 2 {
		t.Fatalf("expected two rejections, got %d", len(result.Rejections))
	}
	if r := result.Rejections[1]; r.Kind != DuplicateFormat || r.File != "ep2.mp3" || r.Episode != "Episode 2" {
		t.Errorf("unexpected rejection %#v", r)
	}
	r := result.Rejections[0]
	if !errors.Is(r, ErrDuplicateFormat) || r.File != "second.mp3" || r.Episode != "Episode 1" {
		t.Errorf("unexpected rejection %#v", r)
	}
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	show := testShow([]string{"mp3"}, testEpisode("Episode 1", "ep1.flac"))
	result := Generate(show)
	if len(result.Documents) != 0 {
		t.Errorf("expected no documents, got %v", result.Formats())
	}
	if len(result.Rejections) != 1 || !errors.Is(result.Rejections[0], ErrUnsupportedFormat) {
		t.Fatalf("expected one UnsupportedFormat rejection, got %v", result.Rejections)
	}
	if r := result.Rejections[0]; r.File != "ep1.flac" || r.Format != "flac" {
		t.Errorf("rejection does not name the file and format: %#v", r)
	}
}

func TestGenerateFormatsAreIndependent(t *testing.T) {
	show := testShow([]string{"mp3", "m4a", "flac"},
		testEpisode("Episode 1", "ep1.mp3"),
		testEpisode("Episode 2", "ep2.m4a"),
		testEpisode("Episode 3", "ep3.mp3", "ep3"),
	)
	result := Generate(show)
	// flac is declared but no episode has a flac file.
	if _, ok := result.Documents["flac"]; ok {
		t.Error("expected no flac document")
	}
	if diff := cmp.Diff([]string{
		"https://cdn.example.com/pod/ep1.mp3",
		"https://cdn.example.com/pod/ep3.mp3",
	}, enclosures(result.Documents["mp3"])); diff != "" {
		t.Errorf("mp3 enclosures mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"https://cdn.example.com/pod/ep2.m4a"}, enclosures(result.Documents["m4a"])); diff != "" {
		t.Errorf("m4a enclosures mismatch (-want +got):\n%s", diff)
	}
	if len(result.Rejections) != 1 || result.Rejections[0].Kind != MalformedFileName {
		t.Errorf("expected one MalformedFileName rejection, got %v", result.Rejections)
	}
	for format, doc := range result.Documents {
		if doc.Format != format {
			t.Errorf("document under %q reports format %q", format, doc.Format)
		}
		if doc.Len() == 0 {
			t.Errorf("document %q is empty", format)
		}
	}
}

func TestGenerateNoEpisodes(t *testing.T) {
	result := Generate(testShow([]string{"mp3"}))
	if len(result.Documents) != 0 || len(result.Rejections) != 0 {
		t.Errorf("expected empty result, got %d documents and %d rejections", len(result.Documents), len(result.Rejections))
	}
	if len(result.Formats()) != 0 {
		t.Errorf("expected no formats, got %v", result.Formats())
	}
}

func TestGenerateDoesNotModifyShow(t *testing.T) {
	show := testShow([]string{"mp3"}, testEpisode("Episode 1", "ep1.mp3", "ep1.ogg"))
	before := show.Clone()
	Generate(show)
	if diff := cmp.Diff(before, show); diff != "" {
		t.Errorf("show was modified (-before +after):\n%s", diff)
	}
}

func TestAssembleItem(t *testing.T) {
	show := testShow([]string{"mp3"})
	episode := testEpisode("Episode 1", "ep1.mp3")
	episode.Subtitle = "The first one"
	episode.Keywords = []string{"intro", "pilot"}
	route := Route{Format: "mp3", File: "ep1.mp3", URL: "https://cdn.example.com/pod/ep1.mp3"}
	expected := model.Item{
		Title:       "Episode 1",
		Link:        "https://cdn.example.com/pod/ep1.mp3",
		Description: "Episode 1 description",
		Author:      "jane@example.com",
		Enclosure: model.Enclosure{
			URL:    "https://cdn.example.com/pod/ep1.mp3",
			Length: "0",
			Type:   "audio/mpeg",
		},
		Guid: model.Guid{
			Value:       "https://cdn.example.com/pod/ep1.mp3",
			IsPermaLink: "true",
		},
		PubDate: "Mon, 02 Jan 2006 15:04:05 +0000",
		ItunesItem: model.ItunesItem{
			Author:   "Jane Doe",
			Image:    model.ItunesImage{Href: "https://example.com/logo.png"},
			Duration: episode.Duration.String(),
			Explicit: "Clean",
			Subtitle: "The first one",
			Summary:  "Episode 1 description",
			Keywords: "intro, pilot",
		},
	}
	if diff := cmp.Diff(expected, AssembleItem(&episode, route, show)); diff != "" {
		t.Errorf("item mismatch (-want +got):\n%s", diff)
	}

	explicit := true
	episode.Explicit = &explicit
	item := AssembleItem(&episode, route, show)
	if item.Explicit != "Explicit" {
		t.Errorf("expected episode override to be Explicit, got %q", item.Explicit)
	}
}

func TestItemLinkIsHostedURL(t *testing.T) {
	show := testShow([]string{"mp3", "m4a"},
		testEpisode("Episode 1", "ep1.mp3", "ep1.m4a"),
		testEpisode("Episode 2", "season2/ep2.mp3"),
	)
	result := Generate(show)
	for _, format := range result.Formats() {
		for _, item := range result.Documents[format].Rss.Channel.Items {
			if item.Link != item.Enclosure.URL || item.Guid.Value != item.Enclosure.URL {
				t.Errorf("%s: link %q and guid %q must equal the enclosure URL %q", format, item.Link, item.Guid.Value, item.Enclosure.URL)
			}
		}
	}
}

func TestAssembleItemUnknownMIME(t *testing.T) {
	show := testShow([]string{"ogg"})
	episode := testEpisode("Episode 1", "ep1.ogg")
	item := AssembleItem(&episode, Route{Format: "ogg", File: "ep1.ogg", URL: "https://cdn.example.com/pod/ep1.ogg"}, show)
	if item.Enclosure.Type != "" {
		t.Errorf("expected empty enclosure type, got %q", item.Enclosure.Type)
	}
}

func TestAssembleHeader(t *testing.T) {
	show := testShow([]string{"mp3"})
	show.Explicit = true
	h := AssembleHeader(show)
	ch := h.Channel()
	if ch.Title != "Kernel Hour" || ch.Link != "https://example.com" || ch.Generator != Generator {
		t.Errorf("unexpected channel %#v", ch)
	}
	if ch.Image.Title != "Kernel Hour Logo" || ch.Image.URL != "https://example.com/logo.png" || ch.Image.Link != "https://example.com" {
		t.Errorf("unexpected image %#v", ch.Image)
	}
	if ch.Explicit != "Explicit" {
		t.Errorf("expected Explicit, got %q", ch.Explicit)
	}
	if ch.Owner.Name != "Jane Doe" || ch.Owner.Email != "jane@example.com" {
		t.Errorf("unexpected owner %#v", ch.Owner)
	}
	if ch.Keywords != "linux, kernel" {
		t.Errorf("unexpected keywords %q", ch.Keywords)
	}
	expectedCategories := []model.ItunesCategory{{
		Text:          "Technology",
		Subcategories: []model.ItunesCategory{{Text: "Software How-To"}},
	}}
	if diff := cmp.Diff(expectedCategories, ch.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	if ch.PubDate != "" || ch.LastBuildDate != "" {
		t.Errorf("expected no timestamps, got %q and %q", ch.PubDate, ch.LastBuildDate)
	}
	if len(ch.Items) != 0 {
		t.Errorf("header must not carry items")
	}

	// Documents get their own copy of the header.
	doc := h.Document("mp3", []model.Item{{Title: "x"}})
	doc.Rss.Channel.Title = "changed"
	doc.Rss.Channel.Categories[0].Text = "changed"
	if h.Channel().Title != "Kernel Hour" || h.Channel().Categories[0].Text != "Technology" {
		t.Error("modifying a document changed the shared header")
	}
	if doc.Rss.Version != RSSVersion {
		t.Errorf("expected version %s, got %s", RSSVersion, doc.Rss.Version)
	}
	if len(doc.Rss.Namespaces) != len(model.Namespaces()) {
		t.Errorf("expected %d namespace declarations, got %d", len(model.Namespaces()), len(doc.Rss.Namespaces))
	}
}

func TestWithTimestamps(t *testing.T) {
	result := Generate(testShow([]string{"mp3"}, testEpisode("Episode 1", "ep1.mp3")))
	doc := result.Documents["mp3"]
	when := time.Date(2026, time.October, 19, 8, 30, 0, 0, time.UTC)
	stamped := doc.WithTimestamps(when, when.Add(time.Hour))
	if stamped.Rss.Channel.PubDate != "Mon, 19 Oct 2026 08:30:00 +0000" {
		t.Errorf("unexpected pubDate %q", stamped.Rss.Channel.PubDate)
	}
	if stamped.Rss.Channel.LastBuildDate != "Mon, 19 Oct 2026 09:30:00 +0000" {
		t.Errorf("unexpected lastBuildDate %q", stamped.Rss.Channel.LastBuildDate)
	}
	if doc.Rss.Channel.PubDate != "" || result.Documents["mp3"].Rss.Channel.LastBuildDate != "" {
		t.Error("WithTimestamps modified the original document")
	}
}

type fakeRenderer struct {
	failOn string
	calls  *atomic.Int32
}

func (f fakeRenderer) Render(ctx context.Context, doc *model.Rss) ([]byte, error) {
	if f.calls != nil {
		f.calls.Add(1)
	}
	if len(doc.Channel.Items) > 0 && doc.Channel.Items[0].Enclosure.Type == f.failOn {
		return nil, errors.New("boom")
	}
	return []byte(fmt.Sprintf("<rss>%d</rss>", len(doc.Channel.Items))), nil
}

func TestRenderAllIsolatesFailures(t *testing.T) {
	show := testShow([]string{"mp3", "m4a", "flac"},
		testEpisode("Episode 1", "ep1.mp3", "ep1.m4a", "ep1.flac"),
		testEpisode("Episode 2", "ep2.mp3"),
	)
	result := Generate(show)
	rendered := RenderAll(context.Background(), fakeRenderer{failOn: "audio/mp4"}, result.Documents)
	if len(rendered.Feeds) != 2 {
		t.Errorf("expected 2 feeds, got %d", len(rendered.Feeds))
	}
	if string(rendered.Feeds["mp3"]) != "<rss>2</rss>" || string(rendered.Feeds["flac"]) != "<rss>1</rss>" {
		t.Errorf("unexpected feeds %q", rendered.Feeds)
	}
	err, ok := rendered.Errors["m4a"]
	if !ok || len(rendered.Errors) != 1 {
		t.Fatalf("expected exactly one error for m4a, got %v", rendered.Errors)
	}
	if !errors.Is(err, ErrSerialization) {
		t.Errorf("expected ErrSerialization, got %v", err)
	}
	if _, ok := rendered.Feeds["m4a"]; ok {
		t.Error("failed format must not have a feed")
	}
}

func TestRenderAllCancelled(t *testing.T) {
	show := testShow([]string{"mp3", "m4a"}, testEpisode("Episode 1", "ep1.mp3", "ep1.m4a"))
	result := Generate(show)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	rendered := RenderAll(ctx, fakeRenderer{calls: &calls}, result.Documents)
	if n := calls.Load(); n != 0 {
		t.Errorf("expected no renders after cancellation, got %d", n)
	}
	if len(rendered.Feeds) != 0 {
		t.Errorf("expected no feeds, got %d", len(rendered.Feeds))
	}
	for _, format := range []string{"mp3", "m4a"} {
		if err := rendered.Errors[format]; !errors.Is(err, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", format, err)
		}
	}
}
