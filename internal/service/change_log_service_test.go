package service

import (
	"context"
	"strings"
	"testing"

	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/model"
)

func TestRecordChange_VersionPerObject(t *testing.T) {
	_, store := setupTestService()
	repo := store.repository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := recordChange(ctx, repo, model.ObjectResult, "r-1", model.ActionUpdate, &model.Result{ResultID: "r-1", Name: "x"}); err != nil {
			t.Fatalf("写入日志失败: %v", err)
		}
	}
	if err := recordChange(ctx, repo, model.ObjectResult, "r-2", model.ActionCreate, nil); err != nil {
		t.Fatalf("写入日志失败: %v", err)
	}

	if got := store.changeLogs.forObject(model.ObjectResult, "r-1"); got[2].Version != 3 {
		t.Errorf("r-1 第三条日志期望版本 3，实际: %d", got[2].Version)
	}
	if got := store.changeLogs.forObject(model.ObjectResult, "r-2"); got[0].Version != 1 || got[0].Data != nil {
		t.Errorf("r-2 期望版本 1 且无快照，实际: %+v", got[0])
	}
}

func TestRecordChange_SnapshotExcludesRelations(t *testing.T) {
	_, store := setupTestService()
	res := &model.Result{ResultID: "r-1", Name: "成果"}
	res.AddActivity(&model.Activity{ActivityID: "a-1", Name: "活动"})

	if err := recordChange(context.Background(), store.repository(), model.ObjectResult, "r-1", model.ActionUpdate, res); err != nil {
		t.Fatalf("写入日志失败: %v", err)
	}
	data := string(store.changeLogs.logs[0].Data)
	if strings.Contains(data, "a-1") || strings.Contains(data, "activities") {
		t.Errorf("快照不应包含关联集合: %s", data)
	}
}

func TestChangeLogService_List_Filter(t *testing.T) {
	svc, store := setupTestService()
	ctx := context.Background()
	repo := store.repository()
	_ = recordChange(ctx, repo, model.ObjectResult, "r-1", model.ActionCreate, &model.Result{ResultID: "r-1", Name: "a"})
	_ = recordChange(ctx, repo, model.ObjectActivity, "a-1", model.ActionCreate, &model.Activity{ActivityID: "a-1", Name: "b"})

	list, total, err := svc.ChangeLog.List(ctx, &dto.ChangeLogListRequest{ObjectType: model.ObjectActivity})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 1 || list[0].ObjectID != "a-1" {
		t.Errorf("期望只返回 a-1 的日志，实际: %+v", list)
	}
	if list[0].LoggedAt == "" || len(list[0].Data) == 0 {
		t.Errorf("期望包含记录时间与快照，实际: %+v", list[0])
	}

	_, total, _ = svc.ChangeLog.List(ctx, &dto.ChangeLogListRequest{})
	if total != 2 {
		t.Errorf("不过滤时期望 2 条，实际: %d", total)
	}
}
