package main

import (
	"context"
	"log/slog"

	"scriptureCircle/api"
	"scriptureCircle/clients/scraper"
	"scriptureCircle/errs"
	"scriptureCircle/services/membership"
	"scriptureCircle/services/posting"
	"scriptureCircle/services/prompts"
	"scriptureCircle/services/sweeper"
	"scriptureCircle/services/user"
	"scriptureCircle/validator"
)

// ensure that we've conformed to the `StrictServerInterface` with a compile-time check
var _ api.StrictServerInterface = (*Server)(nil)

type Server struct {
	MembershipService membership.Service
	PostingService    posting.Service
	SweeperService    sweeper.Service
	UserService       user.Service
	PromptService     prompts.Service
	Scraper           scraper.Scraper
}

func NewServer(
	membershipService membership.Service,
	postingService posting.Service,
	sweeperService sweeper.Service,
	userService user.Service,
	promptService prompts.Service,
	previews scraper.Scraper,
) Server {
	return Server{
		MembershipService: membershipService,
		PostingService:    postingService,
		SweeperService:    sweeperService,
		UserService:       userService,
		PromptService:     promptService,
		Scraper:           previews,
	}
}

func callerID(ctx context.Context) (string, error) {
	uid, ok := validator.UserIDFromContext(ctx)
	if !ok {
		return "", errs.ErrUnauthorized
	}
	return uid, nil
}

func (s Server) GetPing(ctx context.Context, request api.GetPingRequestObject) (api.GetPingResponseObject, error) {
	return api.GetPing200JSONResponse{
		Ping: "pong",
	}, nil
}

func (s Server) GetProfile(ctx context.Context, request api.GetProfileRequestObject) (api.GetProfileResponseObject, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.UserService.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	return api.GetProfile200JSONResponse(*u), nil
}

func (s Server) UpdateProfile(ctx context.Context, request api.UpdateProfileRequestObject) (api.UpdateProfileResponseObject, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.UserService.UpdateProfile(ctx, uid, request.Body.ToInput())
	if err != nil {
		return nil, err
	}
	return api.UpdateProfile200JSONResponse(*u), nil
}

func (s Server) RegisterToken(ctx context.Context, request api.RegisterTokenRequestObject) (api.RegisterTokenResponseObject, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.UserService.RegisterToken(ctx, uid, request.Body.Token); err != nil {
		return nil, err
	}
	return api.RegisterToken204Response{}, nil
}

// membershipResponse reports the caller's groups after a membership change.
func (s Server) membershipResponse(ctx context.Context, uid, groupID string) api.MembershipResponse {
	u, err := s.UserService.GetProfile(ctx, uid)
	if err != nil {
		slog.With("error", err.Error()).Warn("failed to reload profile", "userId", uid)
		u = nil
	}
	return api.TransformMembership(groupID, u)
}

func (s Server) JoinGroup(ctx context.Context, request api.JoinGroupRequestObject) (api.JoinGroupResponseObject, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.MembershipService.Join(ctx, uid, request.GroupId); err != nil {
		return nil, err
	}
	return api.JoinGroup200JSONResponse(s.membershipResponse(ctx, uid, request.GroupId)), nil
}

func (s Server) LeaveGroup(ctx context.Context, request api.LeaveGroupRequestObject) (api.LeaveGroupResponseObject, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	var groupID string
	if request.Body != nil {
		groupID = api.Deref(request.Body.GroupId)
	}
	left, err := s.MembershipService.Leave(ctx, uid, groupID)
	if err != nil {
		return nil, err
	}
	return api.LeaveGroup200JSONResponse(s.membershipResponse(ctx, uid, left)), nil
}

func (s Server) DeleteGroup(ctx context.Context, request api.DeleteGroupRequestObject) (api.DeleteGroupResponseObject, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.MembershipService.DeleteGroup(ctx, uid, request.GroupId); err != nil {
		return nil, err
	}
	return api.DeleteGroup204Response{}, nil
}

func (s Server) PostNote(ctx context.Context, request api.PostNoteRequestObject) (api.PostNoteResponseObject, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := request.Body.Validate(); err != nil {
		return nil, err
	}
	res, err := s.PostingService.PostNote(ctx, uid, request.Body.ToInput())
	if err != nil {
		return nil, err
	}
	return api.PostNote201JSONResponse(api.TransformNoteResult(res)), nil
}

func (s Server) PostMessage(ctx context.Context, request api.PostMessageRequestObject) (api.PostMessageResponseObject, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := request.Body.Validate(); err != nil {
		return nil, err
	}
	msg, err := s.PostingService.PostMessage(ctx, uid, request.GroupId, request.Body.ToInput())
	if err != nil {
		return nil, err
	}
	return api.PostMessage201JSONResponse(*msg), nil
}

func (s Server) Explain(ctx context.Context, request api.ExplainRequestObject) (api.ExplainResponseObject, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}
	if err := request.Body.Validate(); err != nil {
		return nil, err
	}
	text, err := s.PromptService.Explain(ctx, request.Body.ToInput())
	if err != nil {
		return nil, err
	}
	return api.Explain200JSONResponse{Text: text}, nil
}

func (s Server) SummarizeNotes(ctx context.Context, request api.SummarizeNotesRequestObject) (api.SummarizeNotesResponseObject, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	var language string
	if request.Body != nil {
		language = api.Deref(request.Body.Language)
	}
	text, err := s.PromptService.SummarizeNotes(ctx, uid, language)
	if err != nil {
		return nil, err
	}
	return api.SummarizeNotes200JSONResponse{Text: text}, nil
}

func (s Server) Preview(ctx context.Context, request api.PreviewRequestObject) (api.PreviewResponseObject, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}
	return api.Preview200JSONResponse(s.Scraper.Preview(ctx, request.Params.Url)), nil
}

func (s Server) RunInactivitySweep(ctx context.Context, request api.RunInactivitySweepRequestObject) (api.RunInactivitySweepResponseObject, error) {
	report, err := s.SweeperService.RunInactivitySweep(ctx)
	if err != nil {
		return nil, err
	}
	return api.RunInactivitySweep200JSONResponse(*report), nil
}

func (s Server) PurgeGhosts(ctx context.Context, request api.PurgeGhostsRequestObject) (api.PurgeGhostsResponseObject, error) {
	report, err := s.SweeperService.PurgeGhosts(ctx)
	if err != nil {
		return nil, err
	}
	return api.PurgeGhosts200JSONResponse(*report), nil
}

func (s Server) GenerateRecaps(ctx context.Context, request api.GenerateRecapsRequestObject) (api.GenerateRecapsResponseObject, error) {
	report, err := s.PromptService.GenerateRecaps(ctx)
	if err != nil {
		return nil, err
	}
	return api.GenerateRecaps200JSONResponse(*report), nil
}
