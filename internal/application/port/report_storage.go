package port

import "context"

// ReportStorage определяет интерфейс для хранения финальных отчетов.
type ReportStorage interface {
	// PutObject загружает объект и возвращает URL для чтения.
	PutObject(ctx context.Context, key, contentType string, body []byte) (string, error)
}
