package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	"github.com/yuanqiamanman-1/6667-sub001/internal/repository"
)

// PointsService 积分账本业务接口
type PointsService interface {
	Balance(ctx context.Context, c Caller) (*dto.BalanceResponse, error)
	ListTransactions(ctx context.Context, c Caller, req *dto.TransactionListRequest) ([]dto.TransactionResponse, int64, error)
	ListRedemptions(ctx context.Context, c Caller, req *dto.PaginationRequest) ([]dto.RedemptionResponse, int64, error)
	Redeem(ctx context.Context, c Caller, req *dto.RedeemRequest) (*dto.RedemptionResponse, error)
	// Credit 平台侧调账（正数发放、负数扣减），记 admin_adjust 流水
	Credit(ctx context.Context, c Caller, req *dto.CreditPointsRequest) (*dto.TransactionResponse, error)
}

type pointsService struct {
	repo   *repository.Repository
	actors ActorResolver
	logger *zap.Logger
}

// NewPointsService 创建 PointsService 实例
func NewPointsService(repo *repository.Repository, actors ActorResolver, logger *zap.Logger) PointsService {
	return &pointsService{repo: repo, actors: actors, logger: logger}
}

func (s *pointsService) Balance(ctx context.Context, c Caller) (*dto.BalanceResponse, error) {
	balance, err := s.repo.Points.GetBalance(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{UserID: c.UserID, Balance: balance}, nil
}

func (s *pointsService) ListTransactions(ctx context.Context, c Caller, req *dto.TransactionListRequest) ([]dto.TransactionResponse, int64, error) {
	txns, total, err := s.repo.Points.ListTransactions(ctx, repository.TxnFilter{
		UserID: c.UserID,
		Type:   req.Type,
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	})
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		result = append(result, txnResponse(&txns[i]))
	}
	return result, total, nil
}

func (s *pointsService) ListRedemptions(ctx context.Context, c Caller, req *dto.PaginationRequest) ([]dto.RedemptionResponse, int64, error) {
	items, total, err := s.repo.Points.ListRedemptions(ctx, c.UserID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.RedemptionResponse, 0, len(items))
	for i := range items {
		result = append(result, redemptionResponse(&items[i]))
	}
	return result, total, nil
}

func (s *pointsService) Redeem(ctx context.Context, c Caller, req *dto.RedeemRequest) (*dto.RedemptionResponse, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, err
	}
	if !actor.Active {
		return nil, authz.ErrForbidden
	}

	redemption, err := s.repo.Points.Redeem(ctx, c.UserID, req.ItemID, req.ItemName, req.Cost)
	if err != nil {
		// ErrInsufficientPoints 原样透传给 Handler
		return nil, err
	}
	resp := redemptionResponse(redemption)
	return &resp, nil
}

func (s *pointsService) Credit(ctx context.Context, c Caller, req *dto.CreditPointsRequest) (*dto.TransactionResponse, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionAdjustPoints, authz.GlobalScope()); err != nil {
		return nil, err
	}

	// 负数走扣减路径：余额不足时整笔失败，不落流水
	meta := model.Metadata(req.Meta)
	var txn *model.PointsTransaction
	if req.Amount < 0 {
		txn, err = s.repo.Points.Debit(ctx, req.UserID, -req.Amount, model.PointsTxnAdminAdjust, req.Title, meta)
	} else {
		txn, err = s.repo.Points.Credit(ctx, req.UserID, req.Amount, model.PointsTxnAdminAdjust, req.Title, meta)
	}
	if err != nil {
		s.logger.Error("积分调账失败", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, err
	}
	resp := txnResponse(txn)
	return &resp, nil
}

func txnResponse(t *model.PointsTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        t.TxnID,
		Type:      t.Type,
		Delta:     t.Delta,
		Title:     t.Title,
		Metadata:  t.Metadata,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func redemptionResponse(r *model.Redemption) dto.RedemptionResponse {
	return dto.RedemptionResponse{
		ID:         r.RedemptionID,
		ItemID:     r.ItemID,
		ItemName:   r.ItemName,
		PointsCost: r.PointsCost,
		TxnID:      r.TxnID,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}
