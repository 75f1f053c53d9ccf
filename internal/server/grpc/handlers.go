package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/infixtech/ixtportal/internal/server/models"
	"github.com/infixtech/ixtportal/internal/server/services"
	"github.com/infixtech/ixtportal/internal/server/validation"
)

func (s *GRPCServer) respond(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

func (s *GRPCServer) actor(ctx context.Context) (services.Actor, error) {
	a, ok := actorFromContext(ctx)
	if !ok || a.ID == "" {
		return services.Actor{}, status.Error(codes.Unauthenticated, "unauthorized")
	}
	return a, nil
}

func tokenFields(p *services.TokenPair) map[string]any {
	return map[string]any{"accessToken": p.AccessToken, "refreshToken": p.RefreshToken}
}

func (s *GRPCServer) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.respond(map[string]any{"status": "OK"})
}

func (s *GRPCServer) RegisterParticipant(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	account, err := s.accounts.RegisterParticipant(ctx, newAccountInput(req))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "account_id", account.ID, "custom_id", account.CustomID)
	return s.respond(map[string]any{"account": accountFields(account)})
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.accounts.Login(ctx, str(req, "email"), str(req, "password"))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := tokenFields(res.Tokens)
	out["landing"] = res.Landing
	out["account"] = accountFields(res.Account)
	return s.respond(out)
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	pair, err := s.accounts.RefreshToken(ctx, str(req, "refreshToken"))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.respond(tokenFields(pair))
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	pair, err := s.accounts.ChangePassword(ctx, actor.ID, str(req, "oldPassword"), str(req, "newPassword"))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := tokenFields(pair)
	out["landing"] = models.Landing(&models.Account{Role: actor.Role})
	return s.respond(out)
}

// GetProfile returns the caller's account, or another one for admins.
func (s *GRPCServer) GetProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	id := str(req, "accountId")
	if id == "" {
		id = actor.ID
	}

	account, err := s.accounts.GetAccount(ctx, actor, id)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.respond(map[string]any{"account": accountFields(account)})
}

func (s *GRPCServer) AllocateIdentifier(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	role, err := parseRole(str(req, "role"), false)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	id, err := s.accounts.AllocateIdentifier(ctx, actor, role)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.respond(map[string]any{"customId": id})
}

func (s *GRPCServer) CreateMember(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	account, temp, err := s.accounts.CreateMember(ctx, actor, newAccountInput(req))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Member created", "account_id", account.ID, "custom_id", account.CustomID)
	return s.respond(map[string]any{"account": accountFields(account), "temporaryPassword": temp})
}

func (s *GRPCServer) ChangeRole(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	role, err := parseRole(str(req, "role"), false)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	account, err := s.accounts.ChangeRole(ctx, actor, str(req, "accountId"), role)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.respond(map[string]any{"account": accountFields(account)})
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.DeleteAccount(ctx, actor, str(req, "accountId")); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.respond(map[string]any{"deleted": true})
}

func (s *GRPCServer) SetAccountActive(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	active, ok := boolField(req, "active")
	if !ok {
		return nil, s.toStatus(ctx, &validation.Error{Fields: map[string]string{"active": "must be true or false"}})
	}

	account, err := s.accounts.SetActive(ctx, actor, str(req, "accountId"), active)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.respond(map[string]any{"account": accountFields(account)})
}

func (s *GRPCServer) UpdateAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	in := models.AccountUpdate{
		CustomID:   str(req, "customId"),
		JoinedDate: str(req, "joinedDate"),
	}
	account, err := s.accounts.UpdateAccount(ctx, actor, str(req, "accountId"), in)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.respond(map[string]any{"account": accountFields(account)})
}

func (s *GRPCServer) ListAccounts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	role, err := parseRole(str(req, "role"), true)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	list, err := s.accounts.ListAccounts(ctx, actor, role)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	items := make([]any, 0, len(list))
	for _, a := range list {
		items = append(items, accountFields(a))
	}
	return s.respond(map[string]any{"accounts": items})
}

func (s *GRPCServer) ListActivity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.accounts.ListActivity(ctx, actor, str(req, "accountId"))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	items := make([]any, 0, len(list))
	for _, e := range list {
		items = append(items, activityFields(e))
	}
	return s.respond(map[string]any{"entries": items})
}

func (s *GRPCServer) ProfilePhotoUploadURL(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	key, url, err := s.photos.ProfilePhotoUploadURL(ctx, actor.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.respond(map[string]any{"key": key, "url": url})
}

func (s *GRPCServer) ProfilePhotoURL(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	url, err := s.photos.ProfilePhotoURL(ctx, actor.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.respond(map[string]any{"url": url})
}
