package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// bookColumns 搜索字段 → 列名
var bookColumns = map[string]string{
	book.FieldAuthor:      "author",
	book.FieldTitle:       "title",
	book.FieldISBN:        "isbn",
	book.FieldDescription: "description",
	book.FieldCoverImage:  "cover_image",
	book.FieldPrice:       "price",
}

// bookRepository 图书仓储实现
// 1. 负责领域实体与GORM模型之间的转换
// 2. ISBN唯一索引冲突转换为book.ErrISBNDuplicate
// 3. 分类关联写在books_categories,更新时整体替换
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := r.inTx(ctx, func(db *gorm.DB) error {
		if err := db.Create(model).Error; err != nil {
			return err
		}
		return r.replaceCategories(db, model.ID, b.CategoryIDs)
	})
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	db := getDB(ctx, r.db)

	var model BookModel
	if err := db.First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	categoryIDs, err := r.categoryIDs(db, []uint{model.ID})
	if err != nil {
		return nil, err
	}

	b := toBookEntity(&model)
	if ids, ok := categoryIDs[model.ID]; ok {
		b.CategoryIDs = ids
	}
	return b, nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	if len(ids) == 0 {
		return []*book.Book{}, nil
	}

	var models []BookModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntities(models), nil
}

// ExistsByISBN 包含已软删除的图书,与唯一索引的判定保持一致
func (r *bookRepository) ExistsByISBN(ctx context.Context, isbn string, excludeID uint) (bool, error) {
	// 已删除图书的ISBN可以复用
	query := getDB(ctx, r.db).Model(&BookModel{}).Where("isbn = ?", isbn)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询ISBN失败")
	}
	return count > 0, nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := r.inTx(ctx, func(db *gorm.DB) error {
		err := db.Model(&BookModel{ID: b.ID}).
			Select("title", "author", "isbn", "price", "description", "cover_image", "updated_at").
			Updates(model).Error
		if err != nil {
			return err
		}
		return r.replaceCategories(db, b.ID, b.CategoryIDs)
	})
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 软删除,关联关系保留(查询时被软删除条件过滤)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	db := getDB(ctx, r.db)

	var total int64
	if err := db.Model(&BookModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	var models []BookModel
	err := db.Order(orderBy(params.SortBy)).
		Limit(params.PageSize).
		Offset(pageOffset(params.Page, params.PageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books, err := r.withCategories(db, models)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *bookRepository) Search(ctx context.Context, spec book.Specification) ([]*book.Book, error) {
	db := getDB(ctx, r.db)

	expr, err := specExpression(spec)
	if err != nil {
		return nil, err
	}

	query := db.Model(&BookModel{})
	if expr != nil {
		query = query.Clauses(clause.Where{Exprs: []clause.Expression{expr}})
	}

	var models []BookModel
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "搜索图书失败")
	}
	return r.withCategories(db, models)
}

func (r *bookRepository) FindAllByCategoryID(ctx context.Context, categoryID uint) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).
		Joins("JOIN books_categories bc ON bc.book_id = books.id").
		Where("bc.category_id = ?", categoryID).
		Order("books.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类图书失败")
	}
	return toBookEntities(models), nil
}

// inTx 已在事务中时直接复用,否则开启新事务
func (r *bookRepository) inTx(ctx context.Context, fn func(db *gorm.DB) error) error {
	return getDB(ctx, r.db).Transaction(fn)
}

// replaceCategories 删除旧关联,写入新关联
func (r *bookRepository) replaceCategories(db *gorm.DB, bookID uint, categoryIDs []uint) error {
	if err := db.Where("book_id = ?", bookID).Delete(&BookCategoryModel{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]BookCategoryModel, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		links = append(links, BookCategoryModel{BookID: bookID, CategoryID: id})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

// categoryIDs 批量查询图书的分类ID,避免N+1
func (r *bookRepository) categoryIDs(db *gorm.DB, bookIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	var links []BookCategoryModel
	err := db.Model(&BookCategoryModel{}).
		Joins("JOIN categories c ON c.id = books_categories.category_id AND c.deleted_at IS NULL").
		Where("books_categories.book_id IN ?", bookIDs).
		Order("books_categories.category_id ASC").
		Find(&links).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书分类失败")
	}

	for _, l := range links {
		result[l.BookID] = append(result[l.BookID], l.CategoryID)
	}
	return result, nil
}

func (r *bookRepository) withCategories(db *gorm.DB, models []BookModel) ([]*book.Book, error) {
	ids := make([]uint, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}

	categoryIDs, err := r.categoryIDs(db, ids)
	if err != nil {
		return nil, err
	}

	books := toBookEntities(models)
	for _, b := range books {
		if ids, ok := categoryIDs[b.ID]; ok {
			b.CategoryIDs = ids
		}
	}
	return books, nil
}

// specExpression Specification → SQL条件,MatchAll返回nil
func specExpression(spec book.Specification) (clause.Expression, error) {
	switch s := spec.(type) {
	case nil, book.MatchAllSpecification:
		return nil, nil
	case book.FieldIn:
		column, ok := bookColumns[s.Field]
		if !ok {
			return nil, book.ErrNoSpecificationProvider.WithMessage("不支持的搜索字段: %s", s.Field)
		}
		return clause.IN{
			Column: clause.Column{Table: clause.CurrentTable, Name: column},
			Values: fieldValues(s),
		}, nil
	case book.AndSpecification:
		exprs := make([]clause.Expression, 0, len(s.Specs))
		for _, sub := range s.Specs {
			expr, err := specExpression(sub)
			if err != nil {
				return nil, err
			}
			if expr != nil {
				exprs = append(exprs, expr)
			}
		}
		if len(exprs) == 0 {
			return nil, nil
		}
		return clause.And(exprs...), nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInternal, "无法翻译的查询条件")
	}
}

// fieldValues 价格按decimal传参,MySQL按数值比较
func fieldValues(s book.FieldIn) []interface{} {
	values := make([]interface{}, 0, len(s.Values))
	for _, v := range s.Values {
		if s.Field == book.FieldPrice {
			p, err := decimal.NewFromString(v)
			if err != nil {
				continue
			}
			values = append(values, p)
			continue
		}
		values = append(values, v)
	}
	return values
}

func orderBy(sortBy string) string {
	switch sortBy {
	case book.SortByTitle:
		return "title ASC, id ASC"
	case book.SortByPriceAsc:
		return "price ASC, id ASC"
	case book.SortByPriceDesc:
		return "price DESC, id ASC"
	default:
		return "id ASC"
	}
}

// =========================================
// 模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Description: b.Description,
		CoverImage:  b.CoverImage,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Author:      model.Author,
		ISBN:        model.ISBN,
		Price:       model.Price,
		Description: model.Description,
		CoverImage:  model.CoverImage,
		CategoryIDs: []uint{},
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
