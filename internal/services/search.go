package services

import (
	"strings"

	"github.com/aviiiiral/eventcalendarr/internal/models"
)

// CategoryAll bypasses the category filter.
const CategoryAll = "all"

// Search filters events by a case-insensitive substring match on title
// and description, and by exact color category. An empty term matches
// everything; category "all" (or empty) skips the category filter.
func Search(events []models.Event, term, category string) []models.Event {
	term = strings.ToLower(strings.TrimSpace(term))

	var matched []models.Event
	for _, event := range events {
		if category != "" && category != CategoryAll && string(event.Color) != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(event.Title), term) &&
			!strings.Contains(strings.ToLower(event.Description), term) {
			continue
		}
		matched = append(matched, event)
	}
	return matched
}

// Categories returns the distinct colors present in the event list, in
// first-seen order, for populating a category filter.
func Categories(events []models.Event) []models.Color {
	seen := make(map[models.Color]bool, len(events))
	var categories []models.Color
	for _, event := range events {
		color := event.Color
		if color == "" {
			color = models.ColorBlue
		}
		if !seen[color] {
			seen[color] = true
			categories = append(categories, color)
		}
	}
	return categories
}
