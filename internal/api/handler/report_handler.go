package handler

import (
	"bytes"
	"context"
	"credit-ledger/internal/api/handler/dto"
	"credit-ledger/internal/domain/dashboard"
	"credit-ledger/internal/domain/report"
	"fmt"
	"log/slog"
	"net/http"
)

type ReportBuilder interface {
	BuildReport(ctx context.Context, customerID int64) (*report.Report, error)
}

type SummaryBuilder interface {
	BuildSummary(ctx context.Context) (dashboard.Summary, error)
}

type ReportHandler struct {
	reports ReportBuilder
	summary SummaryBuilder
	shop    report.ShopInfo
	logger  *slog.Logger
}

func NewReportHandler(reports ReportBuilder, summary SummaryBuilder, shop report.ShopInfo, l *slog.Logger) *ReportHandler {
	if reports == nil || summary == nil {
		panic("report dependencies cannot be nil")
	}
	return &ReportHandler{
		reports: reports,
		summary: summary,
		shop:    shop,
		logger:  l.With("component", "ReportHandler"),
	}
}

// GetReport handles GET /customers/{customerID}/report
// @Summary Customer report
// @Description Returns the customer with all loans and payments ordered by date, and the totals.
// @Tags Reports
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.ReportResponse "Report"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/report [get]
// @Security BearerAuth
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.build(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, dto.NewReportResponse(rep))
}

// GetStatement handles GET /customers/{customerID}/statement
// @Summary Customer statement
// @Description Renders the customer report as a plain-text statement for printing or download.
// @Tags Reports
// @Produce plain
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {string} string "Statement"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/statement [get]
// @Security BearerAuth
func (h *ReportHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.build(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.RenderStatement(&buf, rep, h.shop); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render statement", slog.Any("error", err))
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.StatementFileName(rep.Customer.Name)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *ReportHandler) build(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	customerID, err := idFromURL(r, customerIDParam)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return nil, false
	}

	rep, err := h.reports.BuildReport(r.Context(), customerID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to build report", slog.Any("error", err))
		respondError(w, err)
		return nil, false
	}
	return rep, true
}

// GetDashboard handles GET /dashboard
// @Summary Store-wide summary
// @Description Customer count, total loaned, total paid, and the outstanding balance across all customers.
// @Tags Reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse "Summary"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
// @Security BearerAuth
func (h *ReportHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary.BuildSummary(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to build dashboard summary", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewDashboardResponse(summary))
}
