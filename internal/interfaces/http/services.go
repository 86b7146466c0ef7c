package http

import (
	"context"
	"io"

	"github.com/jhoicas/auditpro-api/internal/application/dto"
)

// AuthService lo que los handlers de login y usuarios necesitan de *auth.AuthUseCase.
type AuthService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	DeleteUser(ctx context.Context, username string) error
}

// AuditService lo que los handlers de auditoría necesitan de *audit.AuditUseCase.
type AuditService interface {
	CreateSession(ctx context.Context, username string, in dto.CreateAuditRequest, file io.Reader) (*dto.AuditResponse, error)
	Scan(ctx context.Context, sessionID, raw string) (*dto.ScanResponse, error)
	GetSession(ctx context.Context, id string) (*dto.AuditResponse, error)
	ListItems(ctx context.Context, id, query string) (*dto.ItemListResponse, error)
	Finish(ctx context.Context, id string, observations *string) (*dto.AuditResponse, error)
	Cancel(ctx context.Context, id string) error
	Report(ctx context.Context, id string) (*dto.ReportResponse, error)
	Export(ctx context.Context, id string) ([]byte, string, error)
	History(ctx context.Context) ([]dto.HistoryEntryDTO, error)
}
