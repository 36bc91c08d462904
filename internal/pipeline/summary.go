// internal/pipeline/summary.go
package pipeline

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mwhite/nexus/internal/api"
	"github.com/mwhite/nexus/internal/util"
)

// excerptRunes is how much of each completed section the summary quotes.
const excerptRunes = 500

// UserMessage renders the transcript entry for a submitted request.
func UserMessage(req api.PipelineRequest) string {
	return fmt.Sprintf(
		"Analyze collaboration opportunities between **%s** and **%s** in the **%s** domain.",
		req.CompanyName, req.PartnerCompany, req.Domain,
	)
}

// RunSummary builds the assistant transcript entry for a finished run:
// headline stats, an excerpt of every completed section, and the report
// reference.
func RunSummary(req api.PipelineRequest, resp *api.PipelineResponse) string {
	var b strings.Builder

	b.WriteString("## Collaboration Analysis Complete\n\n")
	fmt.Fprintf(&b, "**Companies:** %s & %s\n", req.CompanyName, req.PartnerCompany)
	fmt.Fprintf(&b, "**Domain:** %s\n", req.Domain)
	fmt.Fprintf(&b, "**Status:** %s\n", resp.Status)
	fmt.Fprintf(&b, "**Execution Time:** %s\n", FormatExecutionTime(resp.Metadata.ExecutionTimeMS))
	fmt.Fprintf(&b, "**Tokens Used:** %s\n\n", util.FormatThousands(resp.Metadata.TokensUsed))
	b.WriteString("---\n\n")

	if resp.Sections.Research.Status == api.SectionCompleted {
		b.WriteString("### Research Analysis\n\n")
		b.WriteString(sectionExcerpt(resp.Sections.Research.Content))
	}
	if resp.Sections.Product.Status == api.SectionCompleted {
		b.WriteString("### Product Strategy\n\n")
		b.WriteString(sectionExcerpt(resp.Sections.Product.Content))
	}
	if resp.Sections.Marketing.Status == api.SectionCompleted {
		b.WriteString("### Marketing Strategy\n\n")
		b.WriteString(sectionExcerpt(resp.Sections.Marketing.Content))
	}

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "**Report ID:** `%s`\n\n", resp.ReportID)
	fmt.Fprintf(&b, "View the full report with `nexus reports show %s`", resp.ReportID)
	return b.String()
}

// FailureMessage builds the assistant transcript entry for a failed run.
func FailureMessage(errMsg string) string {
	return fmt.Sprintf(
		"**Error running pipeline**\n\n%s\n\nPlease check your API key configuration and try again.",
		errMsg,
	)
}

// sectionExcerpt quotes the first excerptRunes runes of a section followed by
// an ellipsis marker.
func sectionExcerpt(content string) string {
	if utf8.RuneCountInString(content) > excerptRunes {
		runes := []rune(content)
		content = string(runes[:excerptRunes])
	}
	return content + "...\n\n"
}

// shortReportID abbreviates a report id for activity-log entries.
func shortReportID(id string) string {
	if utf8.RuneCountInString(id) <= 8 {
		return id
	}
	return string([]rune(id)[:8]) + "..."
}
