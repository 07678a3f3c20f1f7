package pageaudit

import (
	"strings"

	"github.com/mahim2022/websiteAuditTool/internal/model"
)

const (
	maxImageIssues = 10
	maxRefLen      = 80
)

// oversizeHints are filename fragments suggesting an unresized original
// asset is being served directly.
var oversizeHints = []string{"large", "big", "original"}

// InspectImages samples delivery and accessibility problems from the image
// inventory: the first 10 flagged images in document order, never more. An
// image appears only when at least one flag is raised.
func InspectImages(images []Image) []model.ImageIssue {
	issues := []model.ImageIssue{}

	for _, img := range images {
		issue := model.ImageIssue{
			Src:                 truncateRef(img.Src),
			MissingAlt:          missingAlt(img),
			MissingModernFormat: !strings.Contains(img.Src, ".webp"),
			Oversized:           hasOversizeHint(img.Src),
		}
		if !issue.MissingAlt && !issue.MissingModernFormat && !issue.Oversized {
			continue
		}

		issues = append(issues, issue)
		if len(issues) == maxImageIssues {
			break
		}
	}

	return issues
}

// CountMissingAlt reports how many images lack usable alt text.
func CountMissingAlt(images []Image) int {
	n := 0
	for _, img := range images {
		if missingAlt(img) {
			n++
		}
	}
	return n
}

func missingAlt(img Image) bool {
	return !img.HasAlt || strings.TrimSpace(img.Alt) == ""
}

func hasOversizeHint(src string) bool {
	for _, hint := range oversizeHints {
		if strings.Contains(src, hint) {
			return true
		}
	}
	return false
}

// truncateRef bounds reference strings recorded on the report so a
// pathological data: URI or query string cannot bloat it.
func truncateRef(s string) string {
	r := []rune(s)
	if len(r) <= maxRefLen {
		return s
	}
	return string(r[:maxRefLen])
}
