package service

import (
	"context"
	"fmt"
	"time"

	"factfind/internal/export"
	"factfind/internal/logger"
	"factfind/internal/mail"
	"factfind/internal/model"
	"factfind/internal/repository"
)

// ReportResult is a rendered export artifact. Warning is set when a
// best-effort side step (email delivery) failed; the artifact itself is
// still good.
type ReportResult struct {
	Filename string
	Content  []byte
	Warning  string
}

// ReportService renders completed fact finds as PDF or Excel and,
// when recipients are configured, emails the PDF to the advisory team.
type ReportService struct {
	factfind *FactFindService
	users    repository.UserRepo
	settings *SettingsService
	mailer   *mail.Mailer
}

func NewReportService(factfind *FactFindService, users repository.UserRepo, settings *SettingsService, mailer *mail.Mailer) *ReportService {
	return &ReportService{
		factfind: factfind,
		users:    users,
		settings: settings,
		mailer:   mailer,
	}
}

// GeneratePDF renders the session summary as a PDF, marks the session
// completed, and emails the document when recipients are configured.
// Delivery failure is reported as a warning, not an error: the caller
// still gets the artifact.
func (s *ReportService) GeneratePDF(ctx context.Context, sessionID int) (*ReportResult, error) {
	session, user, pairs, err := s.collect(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	content, err := export.BuildPDF(export.PDFMeta{
		ClientName:  user.Name,
		ClientEmail: user.Email,
		SessionID:   session.ID,
		CompletedAt: completedAt(session),
	}, pairs)
	if err != nil {
		return nil, err
	}

	if err := s.markCompleted(ctx, session); err != nil {
		return nil, err
	}

	result := &ReportResult{
		Filename: fmt.Sprintf("fact-find-%d.pdf", session.ID),
		Content:  content,
	}
	if warning := s.deliver(ctx, session, user, pairs, content); warning != "" {
		result.Warning = warning
	}
	return result, nil
}

// GenerateExcel renders the session summary as a workbook.
func (s *ReportService) GenerateExcel(ctx context.Context, sessionID int) (*ReportResult, error) {
	session, user, pairs, err := s.collect(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	content, err := export.BuildExcel(export.ExcelMeta{
		ClientName:  user.Name,
		ClientEmail: user.Email,
		SessionID:   session.ID,
		CompletedAt: completedAt(session),
	}, pairs)
	if err != nil {
		return nil, err
	}

	return &ReportResult{
		Filename: fmt.Sprintf("fact-find-%d.xlsx", session.ID),
		Content:  content,
	}, nil
}

// SummaryLines returns the session's "question: answer" lines for the
// assistant context.
func (s *ReportService) SummaryLines(ctx context.Context, sessionID int) ([]string, error) {
	pairs, err := s.factfind.Summary(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(pairs))
	for _, qa := range pairs {
		lines = append(lines, fmt.Sprintf("%s: %s", qa.Question, qa.Answer))
	}
	return lines, nil
}

func (s *ReportService) collect(ctx context.Context, sessionID int) (*model.Session, *model.User, []model.QA, error) {
	session, err := s.factfind.Session(ctx, sessionID)
	if err != nil {
		return nil, nil, nil, err
	}
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, nil, err
	}
	if user == nil {
		user = &model.User{Name: "Unknown client"}
	}
	pairs, err := s.factfind.Summary(ctx, sessionID)
	if err != nil {
		return nil, nil, nil, err
	}
	return session, user, pairs, nil
}

func (s *ReportService) markCompleted(ctx context.Context, session *model.Session) error {
	return s.factfind.complete(ctx, session)
}

// deliver emails the PDF when the settings row names recipients.
// Returns a warning string on failure, empty on success or when email
// is not configured.
func (s *ReportService) deliver(ctx context.Context, session *model.Session, user *model.User, pairs []model.QA, pdf []byte) string {
	if s.mailer == nil {
		return ""
	}
	settings, err := s.settings.Get(ctx)
	if err != nil || settings.EmailRecipients == "" {
		return ""
	}

	text := ""
	for _, qa := range pairs {
		text += fmt.Sprintf("%s: %s\n", qa.Question, qa.Answer)
	}
	err = s.mailer.Send(settings.EmailRecipients, settings.EmailTemplate, mail.Summary{
		UserName:    user.Name,
		SessionID:   session.ID,
		SummaryText: text,
		PDF:         pdf,
	})
	if err != nil {
		logger.Warn("summary email delivery failed", err)
		return "summary email could not be sent"
	}
	return ""
}

func completedAt(session *model.Session) time.Time {
	if session.CompletedAt != nil {
		return *session.CompletedAt
	}
	return time.Now()
}
