package report

import (
	"context"
	"fmt"
	"time"

	"bi-backend/internal/inventory"
	"bi-backend/internal/models"

	"gorm.io/gorm"
)

// Sender: Render edilmiş raporu e-posta eki olarak gönderir.
// Tek deneme; retry ve kuyruk yok.
type Sender interface {
	Send(to, subject, text, html, filename string, content []byte, mimeType string) error
}

// Service: fetch → render → deliver zincirini sıralı yürütür.
// Herhangi bir aşamanın hatası kalan aşamaları iptal eder ve hata
// sarmalanmadan aynen çağırana döner (kısmi teslimat yok).
type Service struct {
	db           *gorm.DB
	sender       Sender
	fetchTimeout time.Duration
	mailTimeout  time.Duration
}

func NewService(db *gorm.DB, sender Sender, fetchTimeout, mailTimeout time.Duration) *Service {
	return &Service{
		db:           db,
		sender:       sender,
		fetchTimeout: fetchTimeout,
		mailTimeout:  mailTimeout,
	}
}

// Run: Raporu üretir; recipient verilmişse e-posta ile gönderir.
// Veri kaynağı olmayan rapor türlerinde fetch adımı atlanır.
func (s *Service) Run(req models.ReportRequest, format models.OutputFormat, recipient, subject string) (*Rendered, error) {
	var rows []inventory.StockRow

	if req.Kind.HasDataSource() {
		ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
		defer cancel()

		var err error
		rows, err = inventory.FetchStocks(s.db.WithContext(ctx), req)
		if err != nil {
			return nil, err
		}
	}

	rendered, err := Render(format, req, rows, time.Now())
	if err != nil {
		return nil, err
	}

	if recipient != "" {
		if subject == "" {
			subject = defaultMailSubject
		}
		text := fmt.Sprintf("Please find attached your %s report", req.Kind)
		html := fmt.Sprintf("<p>Please find attached your <strong>%s</strong> report.</p>", req.Kind)
		if err := s.deliver(recipient, subject, text, html, rendered); err != nil {
			return nil, err
		}
	}

	return rendered, nil
}

// deliver: Gönderimi mailTimeout ile sınırlar; SMTP tarafında takılan bir
// bağlantı çağrıyı süresiz bloke edemez.
func (s *Service) deliver(to, subject, text, html string, rendered *Rendered) error {
	done := make(chan error, 1)
	go func() {
		done <- s.sender.Send(to, subject, text, html, rendered.Filename, rendered.Bytes, rendered.MimeType)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(s.mailTimeout):
		return fmt.Errorf("e-posta gönderimi zaman aşımına uğradı (%s)", s.mailTimeout)
	}
}
