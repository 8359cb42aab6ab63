package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/turnkey-platform/turnkey-service/internal/api/http/handlers"
	"github.com/turnkey-platform/turnkey-service/internal/auth"
	"github.com/turnkey-platform/turnkey-service/internal/domain"
	"github.com/turnkey-platform/turnkey-service/internal/events"
	"github.com/turnkey-platform/turnkey-service/internal/mailer"
	"github.com/turnkey-platform/turnkey-service/internal/notify"
	"github.com/turnkey-platform/turnkey-service/internal/observability"
	"github.com/turnkey-platform/turnkey-service/internal/repository"
	"github.com/turnkey-platform/turnkey-service/internal/service"
	"github.com/turnkey-platform/turnkey-service/internal/worker"
)

type testServer struct {
	app      *fiber.App
	registry *service.RegistryService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	userRepo := repository.NewMemoryUserRepository()
	ticketRepo := repository.NewMemoryTicketRepository()
	dispatcher := events.NewInMemoryDispatcher(logger)

	registry, err := service.NewRegistryService(ctx, service.RegistryDependencies{UserRepo: userRepo, Dispatcher: dispatcher})
	require.NoError(t, err)
	tickets, err := service.NewTicketService(ctx, service.TicketDependencies{TicketRepo: ticketRepo, UserRepo: userRepo, Dispatcher: dispatcher})
	require.NoError(t, err)
	assignments := service.NewAssignmentService(service.AssignmentDependencies{TicketRepo: ticketRepo, UserRepo: userRepo, Dispatcher: dispatcher})

	center := notify.NewCenter(time.Minute)
	t.Cleanup(center.Close)
	notifications := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher: dispatcher,
		UserRepo:   userRepo,
		Center:     center,
		Mailer:     mailer.NewLogMailer(logger, "noreply@test"),
	}, logger)
	worker.StartNotificationWorker(notifications)

	tokenManager := auth.NewTokenManager("test-secret", 60)
	authMiddleware := auth.NewAuthMiddleware(tokenManager, userRepo)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(nil, nil),
		Auth:           handlers.NewAuthHandler(registry, tokenManager),
		Users:          handlers.NewUsersHandler(registry),
		Tickets:        handlers.NewTicketsHandler(tickets, assignments),
		Notifications:  handlers.NewNotificationsHandler(center),
		AuthMiddleware: authMiddleware,
	})

	return &testServer{app: app, registry: registry}
}

func (s *testServer) do(t *testing.T, method, path, token string, payload any) (*nethttp.Response, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// signupAndLogin creates an account and returns its bearer token.
func (s *testServer) signupAndLogin(t *testing.T, email string, role domain.Role, callerToken string) (string, string) {
	t.Helper()
	payload := map[string]any{"email": email, "password": "Password1!", "role": string(role)}

	var resp *nethttp.Response
	var body map[string]any
	if callerToken == "" {
		resp, body = s.do(t, nethttp.MethodPost, "/auth/signup", "", payload)
	} else {
		resp, body = s.do(t, nethttp.MethodPost, "/users/", callerToken, payload)
	}
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	var userID string
	if data, ok := body["data"].(map[string]any); ok {
		if user, ok := data["user"].(map[string]any); ok {
			userID = user["id"].(string)
		} else if id, ok := data["id"].(string); ok {
			userID = id
		}
	}
	require.NotEmpty(t, userID)

	resp, body = s.do(t, nethttp.MethodPost, "/auth/login", "", map[string]any{"email": email, "password": "Password1!"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	token := data["auth"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)
	return token, userID
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(t, nethttp.MethodGet, "/health/live", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["status"])

	// No backends configured: ready with no checks.
	resp, body = s.do(t, nethttp.MethodGet, "/health/ready", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Equal(t, "ready", body["status"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.signupAndLogin(t, "admin@corp.test", domain.RoleAdmin, "")

	resp, body := s.do(t, nethttp.MethodPost, "/auth/login", "", map[string]any{"email": "admin@corp.test", "password": "wrong"})
	require.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	require.Equal(t, "UNAUTHORIZED", errObj["code"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	resp, _ := s.do(t, nethttp.MethodGet, "/tickets/", "", nil)
	require.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, nethttp.MethodGet, "/users/", "garbage-token", nil)
	require.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestTicketLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	adminToken, _ := s.signupAndLogin(t, "admin@corp.test", domain.RoleAdmin, "")
	empToken, empID := s.signupAndLogin(t, "emp@corp.test", domain.RoleEmployee, adminToken)

	resp, body := s.do(t, nethttp.MethodPost, "/tickets/", adminToken, map[string]any{
		"title":     "Fix projector",
		"startDate": "2026-01-01",
		"endDate":   "2026-01-03",
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	ticket := body["data"].(map[string]any)
	ticketID := ticket["id"].(string)
	require.Equal(t, "SR-00001", ticketID)
	require.Equal(t, string(domain.TicketStatusPending), ticket["status"])
	require.Equal(t, float64(2), ticket["days"])

	resp, body = s.do(t, nethttp.MethodPost, fmt.Sprintf("/tickets/%s/assign", ticketID), adminToken, map[string]any{
		"employeeIds": []string{empID},
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Equal(t, string(domain.TicketStatusAssigned), body["data"].(map[string]any)["status"])

	resp, body = s.do(t, nethttp.MethodPatch, fmt.Sprintf("/tickets/%s/status", ticketID), empToken, map[string]any{
		"status": string(domain.TicketStatusInProgress),
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Equal(t, string(domain.TicketStatusInProgress), body["data"].(map[string]any)["status"])

	// Illegal jump surfaces as a validation failure.
	resp, body = s.do(t, nethttp.MethodPatch, fmt.Sprintf("/tickets/%s/status", ticketID), empToken, map[string]any{
		"status": string(domain.TicketStatusCompleted),
	})
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]any)["code"])
}

func TestCompleteRequiresCreatorOrManager(t *testing.T) {
	s := newTestServer(t)
	adminToken, _ := s.signupAndLogin(t, "admin@corp.test", domain.RoleAdmin, "")
	empToken, empID := s.signupAndLogin(t, "emp@corp.test", domain.RoleEmployee, adminToken)
	otherEmpToken, _ := s.signupAndLogin(t, "emp2@corp.test", domain.RoleEmployee, adminToken)

	resp, body := s.do(t, nethttp.MethodPost, "/tickets/", empToken, map[string]any{
		"title":      "Creator owned",
		"startDate":  "2026-01-01",
		"endDate":    "2026-01-02",
		"assignedTo": []string{empID},
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	ticketID := body["data"].(map[string]any)["id"].(string)

	resp, _ = s.do(t, nethttp.MethodPatch, fmt.Sprintf("/tickets/%s/status", ticketID), empToken, map[string]any{"status": string(domain.TicketStatusInProgress)})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	// An illegal jump fails validation even for a caller who would also
	// be refused the Completed transition.
	resp, body = s.do(t, nethttp.MethodPatch, fmt.Sprintf("/tickets/%s/status", ticketID), otherEmpToken, map[string]any{
		"status": string(domain.TicketStatusCompleted),
	})
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]any)["code"])

	resp, _ = s.do(t, nethttp.MethodPatch, fmt.Sprintf("/tickets/%s/status", ticketID), empToken, map[string]any{"status": string(domain.TicketStatusSolved)})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	// Another employee may not complete it.
	resp, body = s.do(t, nethttp.MethodPatch, fmt.Sprintf("/tickets/%s/status", ticketID), otherEmpToken, map[string]any{
		"status": string(domain.TicketStatusCompleted),
	})
	require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	require.Equal(t, "FORBIDDEN", body["error"].(map[string]any)["code"])

	// The creator can.
	resp, _ = s.do(t, nethttp.MethodPatch, fmt.Sprintf("/tickets/%s/status", ticketID), empToken, map[string]any{
		"status": string(domain.TicketStatusCompleted),
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestUserManagementRequiresManager(t *testing.T) {
	s := newTestServer(t)
	adminToken, adminID := s.signupAndLogin(t, "admin@corp.test", domain.RoleAdmin, "")
	empToken, _ := s.signupAndLogin(t, "emp@corp.test", domain.RoleEmployee, adminToken)

	resp, body := s.do(t, nethttp.MethodPost, "/users/", empToken, map[string]any{
		"email": "new@corp.test", "password": "pw", "role": string(domain.RoleEmployee),
	})
	require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	require.Equal(t, "FORBIDDEN", body["error"].(map[string]any)["code"])

	resp, _ = s.do(t, nethttp.MethodDelete, "/users/"+adminID, empToken, nil)
	require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
}

func TestDuplicateEmailSignupConflict(t *testing.T) {
	s := newTestServer(t)
	s.signupAndLogin(t, "taken@corp.test", domain.RoleAdmin, "")

	resp, body := s.do(t, nethttp.MethodPost, "/auth/signup", "", map[string]any{
		"email": "taken@corp.test", "password": "pw", "role": string(domain.RoleAdmin),
	})
	require.Equal(t, nethttp.StatusConflict, resp.StatusCode)
	require.Equal(t, "DUPLICATE_EMAIL", body["error"].(map[string]any)["code"])
}

func TestNotificationsEndpoint(t *testing.T) {
	s := newTestServer(t)
	adminToken, _ := s.signupAndLogin(t, "admin@corp.test", domain.RoleAdmin, "")

	resp, body := s.do(t, nethttp.MethodGet, "/notifications/", adminToken, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	items := body["data"].([]any)
	require.NotEmpty(t, items)

	first := items[0].(map[string]any)
	id := int64(first["id"].(float64))
	resp, _ = s.do(t, nethttp.MethodDelete, fmt.Sprintf("/notifications/%d", id), adminToken, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
