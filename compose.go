package sqlpager

import "fmt"

// DefaultCountTemplate wraps the base query into a row count.
const DefaultCountTemplate = "SELECT COUNT(1) FROM (%s) K"

// ComposeCount substitutes base into the single slot of countTemplate.
// An empty template means DefaultCountTemplate.
//
// Example:
//
//	ComposeCount("SELECT * FROM T", "") // SELECT COUNT(1) FROM (SELECT * FROM T) K
func ComposeCount(base string, countTemplate string) string {
	if countTemplate == "" {
		countTemplate = DefaultCountTemplate
	}

	return fmt.Sprintf(countTemplate, base)
}

// ComposePaginated builds the paginated query of the page using the dialect
// template.
//
// Example:
//
//	d, _ := LookupDialect("mysql")
//	ComposePaginated("SELECT * FROM T", d, RequestedPage{Number: 2, Size: 10}) // SELECT * FROM T LIMIT 10, 10
func ComposePaginated(base string, dialect Dialect, page RequestedPage) string {
	return ComposePaginatedTemplate(base, dialect.Template, page.Offset(), page.Size)
}

// ComposePaginatedTemplate applies template to (base, offset, limit), left to
// right. The template decides how the values are laid out.
func ComposePaginatedTemplate(base string, template string, offset int, limit int) string {
	return fmt.Sprintf(template, base, offset, limit)
}

// withOrdering appends an ORDER BY clause to base when orderings are set.
func withOrdering(base string, orderings Orderings) string {
	if len(orderings) == 0 {
		return base
	}

	return fmt.Sprintf("%s ORDER BY %s", base, orderings.ToSQL())
}

// templateVerbs lists formatting verbs of template in order, skipping "%%".
func templateVerbs(template string) []rune {
	var verbs []rune

	runes := []rune(template)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' {
			continue
		}
		if i+1 >= len(runes) {
			verbs = append(verbs, '!')
			break
		}

		i++
		if runes[i] != '%' {
			verbs = append(verbs, runes[i])
		}
	}

	return verbs
}
