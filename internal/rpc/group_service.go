// Package rpc exposes group and vote operations as the Connect service
// forkful.v1.GroupService.
package rpc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/forkful/internal/middleware"
	"github.com/mmynk/forkful/internal/models"
	"github.com/mmynk/forkful/internal/service"
)

// GroupServiceName is the fully-qualified name of the group service.
const GroupServiceName = "forkful.v1.GroupService"

const (
	GroupServiceCreateGroupProcedure = "/forkful.v1.GroupService/CreateGroup"
	GroupServiceListGroupsProcedure  = "/forkful.v1.GroupService/ListGroups"
	GroupServiceDeleteGroupProcedure = "/forkful.v1.GroupService/DeleteGroup"
	GroupServiceCastVoteProcedure    = "/forkful.v1.GroupService/CastVote"
	GroupServiceGetTallyProcedure    = "/forkful.v1.GroupService/GetTally"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	groups *service.GroupService
	votes  *service.VoteService
}

// NewGroupService creates a new GroupService over the group and vote services.
func NewGroupService(groups *service.GroupService, votes *service.VoteService) *GroupService {
	return &GroupService{groups: groups, votes: votes}
}

// NewGroupServiceHandler builds an HTTP handler for every GroupService
// procedure and returns the path to mount it on.
func NewGroupServiceHandler(svc *GroupService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	createGroup := connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	listGroups := connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...)
	deleteGroup := connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...)
	castVote := connect.NewUnaryHandler(GroupServiceCastVoteProcedure, svc.CastVote, opts...)
	getTally := connect.NewUnaryHandler(GroupServiceGetTallyProcedure, svc.GetTally, opts...)

	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			createGroup.ServeHTTP(w, r)
		case GroupServiceListGroupsProcedure:
			listGroups.ServeHTTP(w, r)
		case GroupServiceDeleteGroupProcedure:
			deleteGroup.ServeHTTP(w, r)
		case GroupServiceCastVoteProcedure:
			castVote.ServeHTTP(w, r)
		case GroupServiceGetTallyProcedure:
			getTally.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// CreateGroup creates a group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("name is required"))
	}

	group, err := s.groups.CreateGroup(ctx, middleware.GetUserID(ctx), service.CreateGroupCommand{
		GroupName: name,
		Members:   req.Msg.Members,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&CreateGroupResponse{Group: toGroup(group)}), nil
}

// ListGroups returns the groups visible to the caller.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	groups, err := s.groups.VisibleGroups(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &ListGroupsResponse{Groups: make([]*Group, len(groups))}
	for i, g := range groups {
		resp.Groups[i] = toGroup(g)
	}
	return connect.NewResponse(resp), nil
}

// DeleteGroup deletes a group by ID and reports whether one matched.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	if req.Msg.GroupId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group_id is required"))
	}

	deleted, err := s.groups.DeleteGroup(ctx, middleware.GetUserID(ctx), req.Msg.GroupId)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&DeleteGroupResponse{Deleted: deleted}), nil
}

// CastVote records the caller's selections for a group.
func (s *GroupService) CastVote(ctx context.Context, req *connect.Request[CastVoteRequest]) (*connect.Response[CastVoteResponse], error) {
	if req.Msg.GroupId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group_id is required"))
	}
	if req.Msg.Categories == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("categories is required"))
	}

	vote, err := s.votes.CastVote(ctx, service.CastVoteCommand{
		GroupID:    req.Msg.GroupId,
		MemberID:   middleware.GetUserID(ctx),
		Categories: req.Msg.Categories,
		Rating:     req.Msg.Rating,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&CastVoteResponse{
		Vote: &Vote{
			Id:         vote.ID,
			GroupId:    vote.GroupID,
			MemberId:   vote.MemberID,
			Categories: vote.Categories,
			Rating:     vote.Rating,
			UpdatedAt:  vote.UpdatedAt,
		},
	}), nil
}

// GetTally aggregates the group's votes.
func (s *GroupService) GetTally(ctx context.Context, req *connect.Request[GetTallyRequest]) (*connect.Response[GetTallyResponse], error) {
	result, err := s.votes.Tally(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &GetTallyResponse{
		GroupId:      req.Msg.GroupId,
		Ballots:      int32(len(result.Ballots)),
		Counts:       make([]*CategoryCount, len(result.Counts)),
		Winners:      result.Winners,
		MeanRating:   result.MeanRating,
		RatedBallots: int32(result.RatedBallots),
	}
	for i, c := range result.Counts {
		resp.Counts[i] = &CategoryCount{Category: c.Category, Votes: int32(c.Votes)}
	}
	return connect.NewResponse(resp), nil
}

func toGroup(g *models.Group) *Group {
	return &Group{
		Id:        g.ID,
		Name:      g.Name,
		OwnerId:   g.OwnerID,
		Members:   g.Members,
		Votes:     g.Votes,
		CreatedAt: g.CreatedAt,
	}
}

func toConnectError(err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return connect.NewError(connect.CodeInvalidArgument, verr)
	case errors.Is(err, service.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, service.ErrNotMember):
		return connect.NewError(connect.CodePermissionDenied, err)
	default:
		slog.Error("RPC failed", "error", err)
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}
}
