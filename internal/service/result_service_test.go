package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/model"
	pkgerrors "learner-results/backend/pkg/errors"
)

// ── Create ──

func TestResultService_Create_Success(t *testing.T) {
	svc, store := setupTestService()
	seedPortfolio(store, "pf-1", "毕业作品集")

	resp, err := svc.Result.Create(context.Background(), &dto.ResultRequest{
		Name:         "数据库课程成果",
		Description:  "完成全部实验",
		PortfolioIDs: []string{"pf-1"},
	})
	if err != nil {
		t.Fatalf("创建成果失败: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("期望自动生成 ID")
	}
	if len(resp.Portfolios) != 1 || resp.Portfolios[0].ID != "pf-1" {
		t.Errorf("期望关联作品集 pf-1，实际: %+v", resp.Portfolios)
	}
	if !store.linked(resp.ID, "pf-1") {
		t.Error("期望 portfolio_results 中存在关联行")
	}

	logs := store.changeLogs.forObject(model.ObjectResult, resp.ID)
	if len(logs) != 1 || logs[0].Action != model.ActionCreate || logs[0].Version != 1 {
		t.Fatalf("期望一条版本为 1 的 create 日志，实际: %+v", logs)
	}
	var snapshot map[string]interface{}
	if err := json.Unmarshal(logs[0].Data, &snapshot); err != nil {
		t.Fatalf("快照不是合法 JSON: %v", err)
	}
	if snapshot["name"] != "数据库课程成果" {
		t.Errorf("快照 name 不符: %v", snapshot["name"])
	}
}

func TestResultService_Create_BlankName(t *testing.T) {
	svc, store := setupTestService()

	_, err := svc.Result.Create(context.Background(), &dto.ResultRequest{Name: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("期望 ErrValidation，实际: %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 1 || verr.Fields[0] != "name: notblank" {
		t.Errorf("期望 name 字段校验失败，实际: %v", err)
	}
	if len(store.results.items) != 0 {
		t.Error("校验失败时不应写入成果")
	}
	if len(store.changeLogs.logs) != 0 {
		t.Error("校验失败时不应写入变更日志")
	}
}

func TestResultService_Create_PortfolioNotFound(t *testing.T) {
	svc, _ := setupTestService()

	_, err := svc.Result.Create(context.Background(), &dto.ResultRequest{
		Name:         "成果",
		PortfolioIDs: []string{"missing"},
	})
	if !errors.Is(err, ErrPortfolioNotFound) {
		t.Errorf("期望 ErrPortfolioNotFound，实际: %v", err)
	}
}

// ── GetByID ──

func TestResultService_GetByID_Graph(t *testing.T) {
	svc, store := setupTestService()
	seedResult(store, "r-1", "成果")
	seedActivity(store, "a-1", model.StringPtr("r-1"))
	seedActivity(store, "a-2", model.StringPtr("r-2"))
	seedProduct(store, "p-1", model.StringPtr("r-1"), nil)

	resp, err := svc.Result.GetByID(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(resp.Activities) != 1 || resp.Activities[0].ID != "a-1" {
		t.Errorf("期望只包含 a-1，实际: %+v", resp.Activities)
	}
	if len(resp.Products) != 1 {
		t.Errorf("期望 1 个产出，实际: %d", len(resp.Products))
	}
}

func TestResultService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestService()

	_, err := svc.Result.GetByID(context.Background(), "nope")
	if !errors.Is(err, ErrResultNotFound) {
		t.Errorf("期望 ErrResultNotFound，实际: %v", err)
	}
}

// ── List ──

func TestResultService_List_InvalidDateFilter(t *testing.T) {
	svc, _ := setupTestService()

	_, _, err := svc.Result.List(context.Background(), &dto.ListRequest{
		Dates: map[string]map[string]string{"date_created": {"before": "yesterday"}},
	})
	if !errors.Is(err, pkgerrors.ErrInvalidFilter) {
		t.Errorf("期望 ErrInvalidFilter，实际: %v", err)
	}
}

func TestResultService_List(t *testing.T) {
	svc, store := setupTestService()
	seedResult(store, "r-1", "A")
	seedResult(store, "r-2", "B")

	list, total, err := svc.Result.List(context.Background(), &dto.ListRequest{})
	if err != nil {
		t.Fatalf("列表查询失败: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("期望 2 条，实际 total=%d len=%d", total, len(list))
	}
}

// ── Update ──

func TestResultService_Update_ReplacesPortfolios(t *testing.T) {
	svc, store := setupTestService()
	seedResult(store, "r-1", "成果")
	seedPortfolio(store, "pf-1", "旧")
	seedPortfolio(store, "pf-2", "新")
	store.links[portfolioLink{resultID: "r-1", portfolioID: "pf-1"}] = true

	resp, err := svc.Result.Update(context.Background(), "r-1", &dto.ResultRequest{
		Name:         "成果 v2",
		PortfolioIDs: []string{"pf-2"},
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if resp.Name != "成果 v2" {
		t.Errorf("名称未更新: %s", resp.Name)
	}
	if store.linked("r-1", "pf-1") {
		t.Error("pf-1 关联应被移除")
	}
	if !store.linked("r-1", "pf-2") {
		t.Error("pf-2 关联应被建立")
	}
}

func TestResultService_Update_OmittedPortfoliosClearLinks(t *testing.T) {
	svc, store := setupTestService()
	seedResult(store, "r-1", "成果")
	seedPortfolio(store, "pf-1", "作品集")
	store.links[portfolioLink{resultID: "r-1", portfolioID: "pf-1"}] = true

	if _, err := svc.Result.Update(context.Background(), "r-1", &dto.ResultRequest{Name: "成果"}); err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if len(store.links) != 0 {
		t.Errorf("期望清空作品集关联，实际: %v", store.links)
	}
}

func TestResultService_Update_VersionIncrements(t *testing.T) {
	svc, _ := setupTestService()
	ctx := context.Background()

	created, err := svc.Result.Create(ctx, &dto.ResultRequest{Name: "v1"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	for _, name := range []string{"v2", "v3"} {
		if _, err := svc.Result.Update(ctx, created.ID, &dto.ResultRequest{Name: name}); err != nil {
			t.Fatalf("更新失败: %v", err)
		}
	}

	logs, total, err := svc.ChangeLog.List(ctx, &dto.ChangeLogListRequest{ObjectType: model.ObjectResult, ObjectID: created.ID})
	if err != nil {
		t.Fatalf("查询日志失败: %v", err)
	}
	if total != 3 {
		t.Fatalf("期望 3 条日志，实际: %d", total)
	}
	for i, l := range logs {
		if l.Version != i+1 {
			t.Errorf("第 %d 条日志版本期望 %d，实际 %d", i, i+1, l.Version)
		}
	}
}

func TestResultService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestService()

	_, err := svc.Result.Update(context.Background(), "nope", &dto.ResultRequest{Name: "x"})
	if !errors.Is(err, ErrResultNotFound) {
		t.Errorf("期望 ErrResultNotFound，实际: %v", err)
	}
}

// ── Delete ──

func TestResultService_Delete_DetachesEverything(t *testing.T) {
	svc, store := setupTestService()
	seedResult(store, "r-1", "成果")
	seedActivity(store, "a-1", model.StringPtr("r-1"))
	seedProduct(store, "p-1", model.StringPtr("r-1"), model.StringPtr("a-1"))
	seedPortfolio(store, "pf-1", "作品集")
	store.links[portfolioLink{resultID: "r-1", portfolioID: "pf-1"}] = true

	if err := svc.Result.Delete(context.Background(), "r-1"); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	if store.results.get("r-1") != nil {
		t.Error("成果应已删除")
	}
	if store.activities.get("a-1").ResultID != nil {
		t.Error("活动的 result_id 应被清空")
	}
	p := store.products.get("p-1")
	if p.ResultID != nil {
		t.Error("产出的 result_id 应被清空")
	}
	if p.ActivityID == nil || *p.ActivityID != "a-1" {
		t.Error("产出与活动的关联不应受影响")
	}
	if len(store.links) != 0 {
		t.Error("作品集关联应被移除")
	}
	if store.portfolios.get("pf-1") == nil {
		t.Error("作品集本身不应被删除")
	}

	logs := store.changeLogs.forObject(model.ObjectResult, "r-1")
	if len(logs) != 1 || logs[0].Action != model.ActionDelete || logs[0].Data != nil {
		t.Errorf("期望一条无快照的 delete 日志，实际: %+v", logs)
	}
}

func TestResultService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestService()

	if err := svc.Result.Delete(context.Background(), "nope"); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("期望 ErrResultNotFound，实际: %v", err)
	}
}

// ── Link / Unlink ──

func TestResultService_Link_Activity(t *testing.T) {
	svc, store := setupTestService()
	seedResult(store, "r-1", "成果")
	seedActivity(store, "a-1", nil)

	resp, err := svc.Result.Link(context.Background(), "r-1", RelationActivities, "a-1")
	if err != nil {
		t.Fatalf("关联失败: %v", err)
	}
	if len(resp.Activities) != 1 {
		t.Errorf("响应中应包含该活动，实际: %+v", resp.Activities)
	}
	if fk := store.activities.get("a-1").ResultID; fk == nil || *fk != "r-1" {
		t.Errorf("活动外键应指向 r-1，实际: %v", fk)
	}
}

func TestResultService_Link_Idempotent(t *testing.T) {
	svc, store := setupTestService()
	seedResult(store, "r-1", "成果")
	seedReflectionFor(store, "rf-1", nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Result.Link(ctx, "r-1", RelationReflections, "rf-1"); err != nil {
			t.Fatalf("第 %d 次关联失败: %v", i+1, err)
		}
	}
	if logs := store.changeLogs.forObject(model.ObjectReflection, "rf-1"); len(logs) != 1 {
		t.Errorf("重复关联不应再写日志，实际日志数: %d", len(logs))
	}
}

func TestResultService_Link_MovesChild(t *testing.T) {
	svc, store := setupTestService()
	seedResult(store, "r-1", "旧成果")
	seedResult(store, "r-2", "新成果")
	seedProduct(store, "p-1", model.StringPtr("r-1"), nil)
	ctx := context.Background()

	if _, err := svc.Result.Link(ctx, "r-2", RelationProducts, "p-1"); err != nil {
		t.Fatalf("改挂失败: %v", err)
	}

	old, err := svc.Result.GetByID(ctx, "r-1")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(old.Products) != 0 {
		t.Errorf("原成果不应再包含该产出: %+v", old.Products)
	}
	if fk := store.products.get("p-1").ResultID; fk == nil || *fk != "r-2" {
		t.Errorf("产出外键应指向 r-2，实际: %v", fk)
	}
}

func TestResultService_Unlink_ChildOfAnotherResult(t *testing.T) {
	svc, store := setupTestService()
	seedResult(store, "r-1", "成果")
	seedResult(store, "r-2", "其他成果")
	seedActivity(store, "a-1", model.StringPtr("r-2"))

	if _, err := svc.Result.Unlink(context.Background(), "r-1", RelationActivities, "a-1"); err != nil {
		t.Fatalf("解除关联失败: %v", err)
	}
	if fk := store.activities.get("a-1").ResultID; fk == nil || *fk != "r-2" {
		t.Errorf("不在集合中的子实体外键不应被修改，实际: %v", fk)
	}
	if len(store.changeLogs.logs) != 0 {
		t.Error("无变化时不应写日志")
	}
}

func TestResultService_Unlink_Evaluation(t *testing.T) {
	svc, store := setupTestService()
	seedResult(store, "r-1", "成果")
	store.evaluations.put(&model.Evaluation{EvaluationID: "e-1", Name: "期末评价", ResultID: model.StringPtr("r-1")})

	resp, err := svc.Result.Unlink(context.Background(), "r-1", RelationEvaluations, "e-1")
	if err != nil {
		t.Fatalf("解除关联失败: %v", err)
	}
	if len(resp.Evaluations) != 0 {
		t.Errorf("响应不应再包含该评价: %+v", resp.Evaluations)
	}
	if store.evaluations.get("e-1").ResultID != nil {
		t.Error("评价外键应被清空")
	}
}

func TestResultService_Link_Portfolio(t *testing.T) {
	svc, store := setupTestService()
	seedResult(store, "r-1", "成果")
	seedPortfolio(store, "pf-1", "作品集")
	ctx := context.Background()

	resp, err := svc.Result.Link(ctx, "r-1", RelationPortfolios, "pf-1")
	if err != nil {
		t.Fatalf("关联作品集失败: %v", err)
	}
	if len(resp.Portfolios) != 1 || !store.linked("r-1", "pf-1") {
		t.Fatalf("期望建立多对多关联，实际: %+v", resp.Portfolios)
	}

	pf, err := svc.Portfolio.GetByID(ctx, "pf-1")
	if err != nil {
		t.Fatalf("查询作品集失败: %v", err)
	}
	if len(pf.Results) != 1 || pf.Results[0].ID != "r-1" {
		t.Errorf("作品集一侧应可见该成果，实际: %+v", pf.Results)
	}

	if _, err := svc.Result.Unlink(ctx, "r-1", RelationPortfolios, "pf-1"); err != nil {
		t.Fatalf("解除作品集关联失败: %v", err)
	}
	if store.linked("r-1", "pf-1") {
		t.Error("关联行应被删除")
	}
}

func TestResultService_Link_Errors(t *testing.T) {
	svc, store := setupTestService()
	seedResult(store, "r-1", "成果")
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		rel     ResultRelation
		childID string
		want    error
	}{
		{"成果不存在", "nope", RelationActivities, "a-1", ErrResultNotFound},
		{"未知关联", "r-1", ResultRelation("friends"), "x", pkgerrors.ErrUnknownRelation},
		{"活动不存在", "r-1", RelationActivities, "missing", ErrActivityNotFound},
		{"正式认定不存在", "r-1", RelationFormalRecognitions, "missing", ErrFormalRecognitionNotFound},
		{"作品集不存在", "r-1", RelationPortfolios, "missing", ErrPortfolioNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Result.Link(ctx, tt.id, tt.rel, tt.childID)
			if !errors.Is(err, tt.want) {
				t.Errorf("期望 %v，实际: %v", tt.want, err)
			}
		})
	}
}

func seedReflectionFor(s *mockStore, id string, resultID *string) *model.Reflection {
	rf := &model.Reflection{ReflectionID: id, Name: "反思 " + id, Description: "desc", ResultID: resultID}
	s.reflections.put(rf)
	return rf
}
