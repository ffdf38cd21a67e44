package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"trendwise/internal/models"
)

type fakeImageSearcher struct {
	urls []string
	err  error
}

func (f *fakeImageSearcher) SearchImages(keyword string, count int) ([]string, error) {
	return f.urls, f.err
}

func draftWith(html string, images []models.MediaImage, videos []models.MediaVideo) *models.GeneratedArticleDraft {
	return &models.GeneratedArticleDraft{
		Title:       "A Title",
		HTMLContent: html,
		RawImages:   images,
		RawVideos:   videos,
	}
}

func TestVideoValidation(t *testing.T) {
	sanitizer := NewMediaSanitizer(nil)

	draft := draftWith("<p>body</p>", []models.MediaImage{{URL: "https://cdn.example.org/a.jpg"}}, []models.MediaVideo{
		{URL: "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{URL: "https://www.youtube.com/embed/dQw4w9WgXcQ?start=10"},
		{URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{URL: "https://www.youtube.com/embed/playlist?list=abc"},
		{URL: "https://www.youtube.com/embed/short"},
	})

	sanitizer.Sanitize(draft, "topic")
	assert.Len(t, draft.RawVideos, 2)
	for _, v := range draft.RawVideos {
		assert.Regexp(t, `^https://www\.youtube\.com/embed/[A-Za-z0-9_-]{11}(\?.*)?$`, v.URL)
	}
}

func TestVideoValidationIdempotence(t *testing.T) {
	sanitizer := NewMediaSanitizer(nil)

	draft := draftWith("<p>body</p>", []models.MediaImage{{URL: "https://cdn.example.org/a.jpg"}}, []models.MediaVideo{
		{URL: "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{URL: "https://www.youtube.com/watch?v=nope"},
	})

	sanitizer.Sanitize(draft, "topic")
	once := append([]models.MediaVideo(nil), draft.RawVideos...)

	sanitizer.Sanitize(draft, "topic")
	assert.Equal(t, once, draft.RawVideos, "re-running the filter must change nothing")
}

func TestExcludedDomainImagesAreStripped(t *testing.T) {
	sanitizer := NewMediaSanitizer(nil)

	html := `<p>intro</p>` +
		`<img src="https://upload.wikimedia.org/pic.jpg" alt="wiki"/>` +
		`<img src="https://cdn.example.org/keep.jpg" alt="keep"/>`
	draft := draftWith(html, []models.MediaImage{
		{URL: "https://upload.wikimedia.org/pic.jpg"},
		{URL: "https://cdn.example.org/keep.jpg"},
	}, nil)

	sanitizer.Sanitize(draft, "topic")

	assert.Len(t, draft.RawImages, 1)
	assert.Equal(t, "https://cdn.example.org/keep.jpg", draft.RawImages[0].URL)
	assert.NotContains(t, draft.HTMLContent, "wikimedia.org")
	assert.Contains(t, draft.HTMLContent, "keep.jpg")
}

func TestPlaceholderReplacement(t *testing.T) {
	sanitizer := NewMediaSanitizer(&fakeImageSearcher{urls: []string{"https://images.example.net/real.jpg"}})

	html := `<img src="https://via.placeholder.com/800x600" alt="ph"/><p>body</p>`
	draft := draftWith(html, []models.MediaImage{{URL: "https://via.placeholder.com/800x600"}}, nil)

	sanitizer.Sanitize(draft, "Quantum Computing")

	assert.Equal(t, "https://images.example.net/real.jpg", draft.RawImages[0].URL)
	assert.Contains(t, draft.HTMLContent, "real.jpg")
	assert.NotContains(t, draft.HTMLContent, "placeholder.com")
}

func TestPlaceholderReplacementFallsBackWhenSearchFails(t *testing.T) {
	sanitizer := NewMediaSanitizer(&fakeImageSearcher{err: assert.AnError})

	draft := draftWith("<p>body</p>", []models.MediaImage{{URL: "https://placehold.co/600"}}, nil)
	sanitizer.Sanitize(draft, "Quantum Computing")

	assert.Contains(t, draft.RawImages[0].URL, "picsum.photos")
	assert.Contains(t, draft.RawImages[0].URL, "keyword=quantum")
}

func TestNonEmptyImageGuarantee(t *testing.T) {
	sanitizer := NewMediaSanitizer(nil)

	draft := draftWith("<p>no images here</p>", nil, nil)
	cover := sanitizer.Sanitize(draft, "Quantum Computing")

	assert.Len(t, draft.RawImages, 1)
	assert.True(t, strings.HasPrefix(draft.HTMLContent, "<img "))
	assert.Equal(t, draft.RawImages[0].URL, cover)
}

func TestCoverImageIsFirstInSanitizedHTML(t *testing.T) {
	sanitizer := NewMediaSanitizer(nil)

	html := `<img src="https://upload.wikimedia.org/drop.jpg" alt="drop"/>` +
		`<img src="https://cdn.example.org/first.jpg" alt="first"/>` +
		`<img src="https://cdn.example.org/second.jpg" alt="second"/>`
	draft := draftWith(html, []models.MediaImage{
		{URL: "https://upload.wikimedia.org/drop.jpg"},
		{URL: "https://cdn.example.org/first.jpg"},
		{URL: "https://cdn.example.org/second.jpg"},
	}, nil)

	cover := sanitizer.Sanitize(draft, "topic")
	assert.Equal(t, "https://cdn.example.org/first.jpg", cover)
}

func TestExclusionPolicyAllowAll(t *testing.T) {
	t.Setenv("EXCLUDED_IMAGE_DOMAINS", "")
	sanitizer := NewMediaSanitizer(nil)

	draft := draftWith(`<img src="https://unsplash.com/pic.jpg" alt="p"/>`,
		[]models.MediaImage{{URL: "https://unsplash.com/pic.jpg"}}, nil)
	sanitizer.Sanitize(draft, "topic")

	assert.Len(t, draft.RawImages, 1)
	assert.Contains(t, draft.HTMLContent, "unsplash.com")
}
