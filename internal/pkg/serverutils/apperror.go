package serverutils

import "fmt"

// AppError carries an HTTP status alongside a client-safe message.
// Services return these for expected failures; anything else is treated
// as an internal error by the handler middleware.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func WrapAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

var (
	ErrSessionNotFound   = NewAppError(404, "Sessão não encontrada")
	ErrSessionNotRunning = NewAppError(400, "Sessão não está em execução")
	ErrSessionNotPaused  = NewAppError(400, "Sessão não está pausada")
	ErrReportNotReady    = NewAppError(409, "Relatório ainda não disponível")
	ErrAttachmentMissing = NewAppError(400, "Arquivo não fornecido")
)
