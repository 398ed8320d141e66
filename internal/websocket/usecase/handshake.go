package usecase

import (
	"context"
	"encoding/json"
	"strings"

	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/auth"
)

// authenticate runs the handshake. A failed handshake leaves the connection
// open and its identity untouched so the client can retry.
func (uc *implUseCase) authenticate(ctx context.Context, c *Connection, raw json.RawMessage) {
	var payload ws.AuthenticatePayload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			uc.rejectHandshake(ctx, c, ws.ErrInvalidMessage)
			return
		}
	}

	identity, err := uc.resolveIdentity(payload)
	if err != nil {
		uc.rejectHandshake(ctx, c, err)
		return
	}

	subject := auth.Subject{UserID: identity.UserID, Admin: identity.IsAdmin()}
	if err := uc.authorizer.CanJoin(ctx, subject, ws.UserChannel(identity.UserID)); err != nil {
		uc.rejectHandshake(ctx, c, ws.ErrChannelForbidden)
		return
	}
	if identity.IsAdmin() {
		if err := uc.authorizer.CanJoin(ctx, subject, ws.ChannelAdmin); err != nil {
			uc.security.LogAccessDenied(ctx, identity.UserID, ws.ChannelAdmin, err.Error())
			identity.Role = ws.RoleUser
		}
	}

	uc.hub.bind(c, identity)
	c.logger.Infof(ctx, "authenticated: user=%s role=%s", identity.UserID, identity.Role)
	c.emit(ws.EventAuthenticated, ws.AuthenticatedPayload{UserID: identity.UserID, UserRole: identity.Role})
}

// resolveIdentity turns the handshake payload into an identity. With a
// verifier configured the token is authoritative.
func (uc *implUseCase) resolveIdentity(payload ws.AuthenticatePayload) (ws.Identity, error) {
	userID := payload.UserID.String()

	if uc.verifier != nil {
		token := strings.TrimSpace(payload.Token)
		if token == "" {
			return ws.Identity{}, ws.ErrMissingToken
		}
		claims, err := uc.verifier.Verify(token)
		if err != nil {
			return ws.Identity{}, ws.ErrInvalidToken
		}
		if userID != "" && userID != claims.Subject {
			return ws.Identity{}, ws.ErrIdentityMismatch
		}
		if !ws.ValidUserID(claims.Subject) {
			return ws.Identity{}, ws.ErrInvalidUserID
		}
		return ws.Identity{UserID: claims.Subject, Role: ws.NormalizeRole(claims.Role)}, nil
	}

	if userID == "" {
		return ws.Identity{}, ws.ErrMissingUserID
	}
	if !ws.ValidUserID(userID) {
		return ws.Identity{}, ws.ErrInvalidUserID
	}
	return ws.Identity{UserID: userID, Role: ws.NormalizeRole(payload.UserRole)}, nil
}

func (uc *implUseCase) rejectHandshake(ctx context.Context, c *Connection, err error) {
	reason := err.Error()
	uc.security.LogAuthFailure(ctx, c.id, reason)
	c.emit(ws.EventAuthError, ws.ErrorPayload{Message: reason})
}
