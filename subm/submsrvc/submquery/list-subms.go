package submquery

import (
	"context"

	"github.com/google/uuid"
	decorator "github.com/programme-lv/contest/srvccqs"
	"github.com/programme-lv/contest/subm"
)

type ListSubmsQuery decorator.QueryHandler[ListSubmsParams, []subm.Subm]

func NewListSubmsQuery(listByUser func(ctx context.Context, userUUID uuid.UUID, contestID string) ([]subm.Subm, error)) ListSubmsQuery {
	return listSubmsHandler{listByUser: listByUser}
}

type ListSubmsParams struct {
	UserUUID  uuid.UUID
	ContestID string
}

type listSubmsHandler struct {
	listByUser func(ctx context.Context, userUUID uuid.UUID, contestID string) ([]subm.Subm, error)
}

func (h listSubmsHandler) Handle(ctx context.Context, p ListSubmsParams) ([]subm.Subm, error) {
	return h.listByUser(ctx, p.UserUUID, p.ContestID)
}
