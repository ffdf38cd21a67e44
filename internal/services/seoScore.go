package services

import (
	"regexp"
	"strings"

	"trendwise/internal/utils"
)

var (
	h1Re = regexp.MustCompile(`(?i)<h1[^>]*>`)
	h2Re = regexp.MustCompile(`(?i)<h2[^>]*>`)
	h3Re = regexp.MustCompile(`(?i)<h3[^>]*>`)
)

// CalculateSEOScore composes four capped 20-point sub-scores plus a heading
// bonus, clamped to 100. Deterministic for a given input.
func CalculateSEOScore(title, metaDescription string, keywords []string, content string) int {
	score := 0

	switch titleLen := len(title); {
	case titleLen >= 50 && titleLen <= 60:
		score += 20
	case titleLen >= 30 && titleLen <= 70:
		score += 15
	default:
		score += 10
	}

	switch descLen := len(metaDescription); {
	case descLen >= 150 && descLen <= 160:
		score += 20
	case descLen >= 120 && descLen <= 170:
		score += 15
	default:
		score += 10
	}

	if len(keywords) > 0 {
		lowerContent := strings.ToLower(content)
		matched := 0
		for _, keyword := range keywords {
			if strings.Contains(lowerContent, strings.ToLower(keyword)) {
				matched++
			}
		}
		score += 20 * matched / len(keywords)
	}

	switch words := utils.WordCount(content); {
	case words >= 800 && words <= 1200:
		score += 20
	case words >= 600 && words <= 1500:
		score += 15
	default:
		score += 10
	}

	h1 := len(h1Re.FindAllString(content, -1))
	h2 := len(h2Re.FindAllString(content, -1))
	h3 := len(h3Re.FindAllString(content, -1))
	switch {
	case h1 == 1 && h2 >= 2 && h3 >= 1:
		score += 20
	case h1 == 1 && h2 >= 1:
		score += 15
	default:
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}
