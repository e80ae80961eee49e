package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/internal/domain/repository"
	"traveldocs-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSender delivers generated document links to the applicant via
// the Gmail API
type GmailSender struct {
	gmailService *gmail.Service
	sender       string
	logger       logger.Logger
}

// NewGmailSender creates a new Gmail sender
func NewGmailSender(ctx context.Context, tokenSource oauth2.TokenSource, sender string, logger logger.Logger) (*GmailSender, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &GmailSender{
		gmailService: service,
		sender:       sender,
		logger:       logger,
	}, nil
}

var _ repository.MailRepository = (*GmailSender)(nil)

// SendDocumentLinks emails the record's document URLs to the given address
func (s *GmailSender) SendDocumentLinks(ctx context.Context, to string, record *entity.DocumentRecord) error {
	if to == "" {
		return fmt.Errorf("no recipient address for record %s", record.ID)
	}

	subject := fmt.Sprintf("Your travel documents are ready (%s)", shortID(record.ID))
	body := buildLinkBody(record)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.sender)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(msg.String())),
	}

	_, err := s.gmailService.Users.Messages.Send("me", message).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sending document links for %s: %w", record.ID, err)
	}

	s.logger.Info("Document links sent", "recordID", record.ID, "to", to, "links", len(record.DocumentURLs))
	return nil
}

func buildLinkBody(record *entity.DocumentRecord) string {
	keys := make([]string, 0, len(record.DocumentURLs))
	for key := range record.DocumentURLs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", record.PassengerName)
	b.WriteString("Your generated travel documents are available at the links below:\r\n\r\n")
	for _, key := range keys {
		label := strings.ReplaceAll(strings.TrimSuffix(key, "_url"), "_", " ")
		fmt.Fprintf(&b, "- %s: %s\r\n", label, record.DocumentURLs[key])
	}
	b.WriteString("\r\nThese documents are for demonstration purposes only.\r\n")
	return b.String()
}

func shortID(id string) string {
	if i := strings.Index(id, "-"); i > 0 {
		return strings.ToUpper(id[:i])
	}
	return strings.ToUpper(id)
}
