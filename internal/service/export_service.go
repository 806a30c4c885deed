package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"learner-results/backend/internal/model"
	"learner-results/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 设计说明：
//   - 成果及其一层关联导出为 Excel (.xlsx)
//   - 第一个 Sheet 为成果概览，其后每类子实体一个 Sheet
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	ExportResult(ctx context.Context, resultID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// sheet 一个工作表：表头 + 数据行
type sheet struct {
	name   string
	header []string
	widths []float64
	rows   [][]interface{}
}

// ═══════════════════════════════════════════════════════════
// ExportResult — 导出成果为 Excel
// ═══════════════════════════════════════════════════════════
//
// Sheet 顺序：成果 / 活动 / 产出 / 反思 / 评价 / 正式认定 / 作品集
// 子实体为空时仍输出表头

func (s *exportService) ExportResult(ctx context.Context, resultID string) (*bytes.Buffer, string, error) {
	res, err := s.repo.Result.GetGraph(ctx, resultID)
	if err != nil {
		err = notFound(err, ErrResultNotFound)
		if !isBusinessError(err) {
			s.logger.Error("查询成果失败", zap.String("id", resultID), zap.Error(err))
		}
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range resultSheets(res) {
		if err := writeSheet(f, sh, i == 0); err != nil {
			s.logger.Error("写入工作表失败", zap.String("sheet", sh.name), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}
	// 删除默认 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		s.logger.Warn("删除默认工作表失败", zap.Error(err))
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("成果_%s.xlsx", res.Name)
	return buf, filename, nil
}

func resultSheets(res *model.Result) []sheet {
	overview := sheet{
		name:   "成果",
		header: []string{"ID", "名称", "描述", "创建时间", "修改时间"},
		widths: []float64{38, 24, 48, 22, 22},
		rows: [][]interface{}{
			{res.ResultID, res.Name, res.Description, formatTime(res.DateCreated), formatTime(res.DateModified)},
		},
	}

	activities := sheet{
		name:   "活动",
		header: []string{"ID", "名称", "类型", "开始日期", "结束日期", "评分方式", "评价", "参考"},
		widths: []float64{38, 24, 14, 22, 22, 14, 14, 24},
	}
	for _, a := range res.Activities {
		activities.rows = append(activities.rows, []interface{}{
			a.ActivityID, a.Name, a.Type, optionalString(formatTimePtr(a.StartDate)), optionalString(formatTimePtr(a.EndDate)),
			a.GradeType, a.Evaluation, a.Reference,
		})
	}

	products := sheet{
		name:   "产出",
		header: []string{"ID", "名称", "类型", "描述", "所属活动"},
		widths: []float64{38, 24, 14, 48, 38},
	}
	for _, p := range res.Products {
		products.rows = append(products.rows, []interface{}{
			p.ProductID, p.Name, p.Type, p.Description, optionalString(p.ActivityID),
		})
	}

	reflections := sheet{
		name:   "反思",
		header: []string{"ID", "名称", "状态", "作者", "版权", "描述"},
		widths: []float64{38, 24, 12, 30, 30, 48},
	}
	for _, rf := range res.Reflections {
		reflections.rows = append(reflections.rows, []interface{}{
			rf.ReflectionID, rf.Name, rf.Status, rf.Author, rf.Rights, rf.Description,
		})
	}

	evaluations := sheet{
		name:   "评价",
		header: []string{"ID", "名称", "成绩", "评价人", "描述"},
		widths: []float64{38, 24, 12, 30, 48},
	}
	for _, e := range res.Evaluations {
		evaluations.rows = append(evaluations.rows, []interface{}{
			e.EvaluationID, e.Name, e.Grade, e.Evaluator, e.Description,
		})
	}

	recognitions := sheet{
		name:   "正式认定",
		header: []string{"ID", "名称", "类型", "颁发机构", "描述"},
		widths: []float64{38, 24, 14, 30, 48},
	}
	for _, fr := range res.FormalRecognitions {
		recognitions.rows = append(recognitions.rows, []interface{}{
			fr.FormalRecognitionID, fr.Name, fr.Type, fr.Issuer, fr.Description,
		})
	}

	portfolios := sheet{
		name:   "作品集",
		header: []string{"ID", "名称", "描述"},
		widths: []float64{38, 24, 48},
	}
	for _, p := range res.Portfolios {
		portfolios.rows = append(portfolios.rows, []interface{}{p.PortfolioID, p.Name, p.Description})
	}

	return []sheet{overview, activities, products, reflections, evaluations, recognitions, portfolios}
}

func writeSheet(f *excelize.File, sh sheet, active bool) error {
	idx, err := f.NewSheet(sh.name)
	if err != nil {
		return err
	}
	if active {
		f.SetActiveSheet(idx)
	}

	for i, w := range sh.widths {
		col := colName(i)
		if err := f.SetColWidth(sh.name, col, col, w); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	// 表头
	if err := f.SetSheetRow(sh.name, "A1", &sh.header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh.name, "A1", cell(colName(len(sh.header)-1), 1), headerStyle); err != nil {
		return err
	}

	// 数据行
	for i, row := range sh.rows {
		if err := f.SetSheetRow(sh.name, cell("A", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
