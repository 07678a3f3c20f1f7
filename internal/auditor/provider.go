package auditor

import (
	"context"

	"github.com/mahim2022/websiteAuditTool/internal/model"
)

// AuditProvider defines the contract for any audit engine. The report is
// always returned; a failed audit is signaled by its Error field, not by a
// Go error.
type AuditProvider interface {
	Audit(ctx context.Context, targetURL string) *model.AuditReport
}
