package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	pkgerrors "github.com/yuanqiamanman-1/6667-sub001/pkg/errors"
)

func TestRedeemWritesTxnAndRedemptionTogether(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewPointsService(repo, NewActorResolver(repo), testLogger)
	user := seedStudent(m, "stu-1", "pku")
	m.points.balances[user] = 100

	result, err := svc.Redeem(context.Background(), Caller{UserID: user}, &dto.RedeemRequest{
		ItemID: "item-1", ItemName: "笔记本", Cost: 30,
	})
	if err != nil {
		t.Fatalf("兑换应成功: %v", err)
	}
	if result.PointsCost != 30 || result.TxnID == "" {
		t.Fatalf("兑换记录字段不符: %+v", result)
	}
	if m.points.balances[user] != 70 {
		t.Fatalf("兑换后余额应为 70, got %d", m.points.balances[user])
	}
	if len(m.points.txns) != 1 || m.points.txns[0].Delta != -30 {
		t.Fatalf("应落一条 -30 流水, got %+v", m.points.txns)
	}
	if m.points.txns[0].TxnID != result.TxnID {
		t.Fatal("兑换记录应指向对应的负向流水")
	}
}

func TestRedeemInsufficientLeavesLedgerUntouched(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewPointsService(repo, NewActorResolver(repo), testLogger)
	user := seedStudent(m, "stu-1", "pku")
	m.points.balances[user] = 10

	_, err := svc.Redeem(context.Background(), Caller{UserID: user}, &dto.RedeemRequest{
		ItemID: "item-1", ItemName: "笔记本", Cost: 30,
	})
	if !errors.Is(err, pkgerrors.ErrInsufficientPoints) {
		t.Fatalf("余额不足应返回业务错误, got %v", err)
	}
	if m.points.balances[user] != 10 {
		t.Fatalf("失败的兑换不应动余额, got %d", m.points.balances[user])
	}
	if len(m.points.txns) != 0 || len(m.points.redemptions) != 0 {
		t.Fatal("失败的兑换不应留下流水或兑换记录")
	}
}

func TestRedeemDeniedForInactiveUser(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewPointsService(repo, NewActorResolver(repo), testLogger)
	user := seedStudent(m, "stu-1", "pku")
	m.users.users[user].IsActive = false
	m.points.balances[user] = 100

	_, err := svc.Redeem(context.Background(), Caller{UserID: user}, &dto.RedeemRequest{
		ItemID: "item-1", ItemName: "笔记本", Cost: 30,
	})
	if !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("停用账号兑换应被拒绝, got %v", err)
	}
}

func TestCreditRequiresPlatformCapability(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewPointsService(repo, NewActorResolver(repo), testLogger)
	student := seedStudent(m, "stu-1", "pku")
	hq := seedHQAdmin(m)

	req := &dto.CreditPointsRequest{UserID: student, Amount: 50, Title: "活动奖励"}

	_, err := svc.Credit(context.Background(), Caller{UserID: student}, req)
	if !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("普通学生发放积分应被拒绝, got %v", err)
	}

	txn, err := svc.Credit(context.Background(), Caller{UserID: hq}, req)
	if err != nil {
		t.Fatalf("总会发放积分应成功: %v", err)
	}
	if txn.Type != model.PointsTxnAdminAdjust || txn.Delta != 50 {
		t.Fatalf("流水类型或金额不符: %+v", txn)
	}
	if m.points.balances[student] != 50 {
		t.Fatalf("发放后余额应为 50, got %d", m.points.balances[student])
	}
}

func TestCreditNegativeAmountDebits(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewPointsService(repo, NewActorResolver(repo), testLogger)
	student := seedStudent(m, "stu-1", "pku")
	hq := seedHQAdmin(m)
	m.points.balances[student] = 80

	txn, err := svc.Credit(context.Background(), Caller{UserID: hq}, &dto.CreditPointsRequest{
		UserID: student, Amount: -30, Title: "违规扣减",
	})
	if err != nil {
		t.Fatalf("总会扣减积分应成功: %v", err)
	}
	if txn.Type != model.PointsTxnAdminAdjust || txn.Delta != -30 {
		t.Fatalf("流水类型或金额不符: %+v", txn)
	}
	if m.points.balances[student] != 50 {
		t.Fatalf("扣减后余额应为 50, got %d", m.points.balances[student])
	}
}

func TestCreditNegativeInsufficientLeavesLedgerUntouched(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewPointsService(repo, NewActorResolver(repo), testLogger)
	student := seedStudent(m, "stu-1", "pku")
	hq := seedHQAdmin(m)
	m.points.balances[student] = 10

	_, err := svc.Credit(context.Background(), Caller{UserID: hq}, &dto.CreditPointsRequest{
		UserID: student, Amount: -30, Title: "违规扣减",
	})
	if !errors.Is(err, pkgerrors.ErrInsufficientPoints) {
		t.Fatalf("余额不足的扣减应返回业务错误, got %v", err)
	}
	if m.points.balances[student] != 10 {
		t.Fatalf("失败的扣减不应动余额, got %d", m.points.balances[student])
	}
	if len(m.points.txns) != 0 {
		t.Fatal("失败的扣减不应留下流水")
	}
}

func TestBalanceAndTransactionsAreSelfScoped(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewPointsService(repo, NewActorResolver(repo), testLogger)
	a := seedStudent(m, "stu-a", "pku")
	b := seedStudent(m, "stu-b", "pku")
	m.points.appendTxn(a, model.PointsTxnEarn, "课时", 20, nil)
	m.points.appendTxn(b, model.PointsTxnEarn, "课时", 99, nil)

	balance, err := svc.Balance(context.Background(), Caller{UserID: a})
	if err != nil || balance.Balance != 20 {
		t.Fatalf("余额应为 20, got %+v err=%v", balance, err)
	}

	txns, total, err := svc.ListTransactions(context.Background(), Caller{UserID: a}, &dto.TransactionListRequest{})
	if err != nil {
		t.Fatalf("查询流水应成功: %v", err)
	}
	if total != 1 || txns[0].Delta != 20 {
		t.Fatalf("只应看到本人流水, got %+v", txns)
	}
}
