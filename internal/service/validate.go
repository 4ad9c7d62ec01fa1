package service

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/VArterJr/neotypa-booktabs/internal/config"
	"github.com/VArterJr/neotypa-booktabs/internal/domain"
)

// cleanTitle trims and validates an entity title.
func cleanTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if err := validation.Validate(t,
		validation.Required,
		validation.Length(1, config.MaxTitleLen),
	); err != nil {
		return "", fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
	}
	return t, nil
}

func validateURL(url string) error {
	if err := validation.Validate(strings.TrimSpace(url),
		validation.Required,
		validation.Length(1, config.MaxURLLen),
	); err != nil {
		return fmt.Errorf("%w: url: %v", domain.ErrValidation, err)
	}
	return nil
}

func validateDescription(desc string) error {
	if err := validation.Validate(desc,
		validation.Length(0, config.MaxDescriptionLen),
	); err != nil {
		return fmt.Errorf("%w: description: %v", domain.ErrValidation, err)
	}
	return nil
}

// cleanTags normalizes a tag set: trim, drop empties, case-sensitive dedup
// preserving first occurrence, cap at the per-bookmark limit. Case is
// preserved, so "a" and "A" are distinct tags.
func cleanTags(tags []string) ([]string, error) {
	seen := make(map[string]bool, len(tags))
	var clean []string
	for _, tag := range tags {
		t := strings.TrimSpace(tag)
		if t == "" || seen[t] {
			continue
		}
		if err := validation.Validate(t, validation.Length(1, config.MaxTagLen)); err != nil {
			return nil, fmt.Errorf("%w: tag %q: %v", domain.ErrValidation, t, err)
		}
		seen[t] = true
		clean = append(clean, t)
		if len(clean) == config.MaxTagsPerBookmark {
			break
		}
	}
	return clean, nil
}
