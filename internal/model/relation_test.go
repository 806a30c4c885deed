package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RelationSuite struct {
	suite.Suite
	result *Result
}

func TestRelationSuite(t *testing.T) {
	suite.Run(t, new(RelationSuite))
}

func (s *RelationSuite) SetupTest() {
	s.result = &Result{ResultID: "r-1", Name: "Math course"}
}

// TestAddChild 添加后两侧一致，重复添加不改变集合
func (s *RelationSuite) TestAddChild() {
	s.Run("activity", func() {
		a := &Activity{ActivityID: "a-1", Name: "Internship"}
		s.result.AddActivity(a)
		s.result.AddActivity(a)

		s.Len(s.result.Activities, 1)
		s.True(s.result.HasActivity(a))
		s.True(a.BelongsTo(s.result))
	})

	s.Run("reflection", func() {
		rf := &Reflection{ReflectionID: "rf-1"}
		s.result.AddReflection(rf)
		s.result.AddReflection(rf)

		s.Len(s.result.Reflections, 1)
		s.True(rf.BelongsTo(s.result))
	})

	s.Run("evaluation", func() {
		e := &Evaluation{EvaluationID: "e-1"}
		s.result.AddEvaluation(e)
		s.result.AddEvaluation(e)

		s.Len(s.result.Evaluations, 1)
		s.True(e.BelongsTo(s.result))
	})

	s.Run("formal recognition", func() {
		f := &FormalRecognition{FormalRecognitionID: "f-1"}
		s.result.AddFormalRecognition(f)
		s.result.AddFormalRecognition(f)

		s.Len(s.result.FormalRecognitions, 1)
		s.True(f.BelongsTo(s.result))
	})
}

// TestAddChild_MatchesByID 以 id 判定同一实体（重新加载得到的不同指针）
func (s *RelationSuite) TestAddChild_MatchesByID() {
	s.result.AddActivity(&Activity{ActivityID: "a-1"})
	s.result.AddActivity(&Activity{ActivityID: "a-1"})

	s.Len(s.result.Activities, 1)
}

// TestRemoveChild 移除后集合不含子实体且外键清空
func (s *RelationSuite) TestRemoveChild() {
	a := &Activity{ActivityID: "a-1"}
	s.result.AddActivity(a)
	s.result.RemoveActivity(a)

	s.Empty(s.result.Activities)
	s.Nil(a.ResultID)

	rf := &Reflection{ReflectionID: "rf-1"}
	s.result.AddReflection(rf)
	s.result.RemoveReflection(rf)
	s.Empty(s.result.Reflections)
	s.Nil(rf.ResultID)

	e := &Evaluation{EvaluationID: "e-1"}
	s.result.AddEvaluation(e)
	s.result.RemoveEvaluation(e)
	s.Empty(s.result.Evaluations)
	s.Nil(e.ResultID)

	f := &FormalRecognition{FormalRecognitionID: "f-1"}
	s.result.AddFormalRecognition(f)
	s.result.RemoveFormalRecognition(f)
	s.Empty(s.result.FormalRecognitions)
	s.Nil(f.ResultID)
}

// TestRemoveChild_NotPresentIsNoop 不在集合中的子实体不受影响
func (s *RelationSuite) TestRemoveChild_NotPresentIsNoop() {
	other := &Result{ResultID: "r-2"}
	a := &Activity{ActivityID: "a-1"}
	other.AddActivity(a)

	s.result.RemoveActivity(a)

	s.Require().NotNil(a.ResultID)
	s.Equal("r-2", *a.ResultID)
	s.True(other.HasActivity(a))
}

// TestRemoveChild_StaleRemovalKeepsReassignment 已改挂到 P2 的子实体，P1 的移除不得清空外键
func (s *RelationSuite) TestRemoveChild_StaleRemovalKeepsReassignment() {
	p1 := s.result
	p2 := &Result{ResultID: "r-2"}
	a := &Activity{ActivityID: "a-1"}

	p1.AddActivity(a)
	p2.AddActivity(a)
	p1.RemoveActivity(a)

	s.False(p1.HasActivity(a))
	s.True(p2.HasActivity(a))
	s.Require().NotNil(a.ResultID)
	s.Equal("r-2", *a.ResultID)
	s.True(a.BelongsTo(p2))
}

// TestProduct_DualParentIndependence 清除 Result 关联不影响 Activity 关联
func (s *RelationSuite) TestProduct_DualParentIndependence() {
	act := &Activity{ActivityID: "a-1"}
	p := &Product{ProductID: "p-1"}

	act.AddProduct(p)
	s.result.AddProduct(p)
	s.result.RemoveProduct(p)

	s.Nil(p.ResultID)
	s.False(s.result.HasProduct(p))
	s.True(act.HasProduct(p))
	s.True(p.BelongsToActivity(act))

	act.RemoveProduct(p)
	s.Nil(p.ActivityID)
	s.Empty(act.Products)
}

// TestPortfolio_ManyToMany 两侧集合同步增删
func (s *RelationSuite) TestPortfolio_ManyToMany() {
	pf := &Portfolio{PortfolioID: "pf-1"}

	s.result.AddPortfolio(pf)
	s.True(s.result.HasPortfolio(pf))
	s.True(pf.HasResult(s.result))

	s.result.AddPortfolio(pf)
	pf.AddResult(s.result)
	s.Len(s.result.Portfolios, 1)
	s.Len(pf.Results, 1)

	pf.RemoveResult(s.result)
	s.Empty(s.result.Portfolios)
	s.Empty(pf.Results)

	pf.AddResult(s.result)
	s.True(s.result.HasPortfolio(pf))
	s.result.RemovePortfolio(pf)
	s.Empty(pf.Results)
	s.Empty(s.result.Portfolios)
}

// TestScenario_ResultWithActivity 成果与活动的完整往返
func TestScenario_ResultWithActivity(t *testing.T) {
	r1 := &Result{Name: "Math course"}
	a1 := &Activity{Name: "Homework"}

	r1.AddActivity(a1)

	require.NotEmpty(t, r1.ResultID, "关联时应为父实体分配 id")
	assert.Equal(t, []*Activity{a1}, r1.Activities)
	assert.True(t, a1.BelongsTo(r1))

	r1.RemoveActivity(a1)
	assert.Empty(t, r1.Activities)
	assert.Nil(t, a1.ResultID)
}

func TestAssignID_NeverReassigns(t *testing.T) {
	r := &Result{ResultID: "fixed"}
	require.NoError(t, r.BeforeCreate(nil))
	assert.Equal(t, "fixed", r.ResultID)

	fresh := &Result{}
	require.NoError(t, fresh.BeforeCreate(nil))
	assert.Len(t, fresh.ResultID, 36)
}
