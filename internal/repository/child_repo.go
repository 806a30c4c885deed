package repository

import (
	"gorm.io/gorm"

	"learner-results/backend/internal/model"
)

// 仅持有外键的子实体，数据访问全部走通用 CRUD

// ProductRepository 学习产出数据访问接口
type ProductRepository interface {
	CRUD[model.Product]
}

// ReflectionRepository 学习反思数据访问接口
type ReflectionRepository interface {
	CRUD[model.Reflection]
}

// EvaluationRepository 成果评价数据访问接口
type EvaluationRepository interface {
	CRUD[model.Evaluation]
}

// FormalRecognitionRepository 正式认定数据访问接口
type FormalRecognitionRepository interface {
	CRUD[model.FormalRecognition]
}

// NewProductRepo 创建 ProductRepository 实例
func NewProductRepo(db *gorm.DB) ProductRepository {
	return &crudRepo[model.Product]{db: db, pk: "product_id", schema: productSchema}
}

// NewReflectionRepo 创建 ReflectionRepository 实例
func NewReflectionRepo(db *gorm.DB) ReflectionRepository {
	return &crudRepo[model.Reflection]{db: db, pk: "reflection_id", schema: reflectionSchema}
}

// NewEvaluationRepo 创建 EvaluationRepository 实例
func NewEvaluationRepo(db *gorm.DB) EvaluationRepository {
	return &crudRepo[model.Evaluation]{db: db, pk: "evaluation_id", schema: evaluationSchema}
}

// NewFormalRecognitionRepo 创建 FormalRecognitionRepository 实例
func NewFormalRecognitionRepo(db *gorm.DB) FormalRecognitionRepository {
	return &crudRepo[model.FormalRecognition]{db: db, pk: "formal_recognition_id", schema: formalRecognitionSchema}
}
