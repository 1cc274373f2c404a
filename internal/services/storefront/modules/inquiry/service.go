package inquiry

import (
	"strings"

	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"go.uber.org/zap"
)

// submission is one contact form post.
type submission struct {
	Name    string
	Email   string
	Message string
}

type service struct {
	logger *zap.Logger
}

func newService(logger *zap.Logger) service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return service{logger: logger}
}

// submit validates an inquiry. Accepted inquiries are only acknowledged;
// nothing is sent or stored.
func (s service) submit(in submission) (submission, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.Name == "" {
		return in, apperrors.EK(apperrors.KindInvalidInput, "errors.inquiry.name_required", "inquiry name is required")
	}
	s.logger.Info("inquiry accepted",
		zap.Bool("has_email", in.Email != ""),
		zap.Int("message_length", len(in.Message)),
	)
	return in, nil
}
