package article

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/modules/activity"
	"github.com/quillpress/core/internal/modules/media"
	"github.com/quillpress/core/internal/modules/slug"
	"github.com/quillpress/core/internal/pkg/apperr"
	"github.com/quillpress/core/internal/pkg/htmltext"
	"github.com/quillpress/core/internal/pkg/pagination"
	"github.com/quillpress/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Bulk transition actions for articles.
const (
	ActionPublish = "publish"
	ActionDraft   = "draft"
	ActionDelete  = "delete"
)

type Service struct {
	db       *gorm.DB
	slugs    *slug.Resolver
	media    *media.Service
	activity *activity.Service
	logger   *zap.Logger
}

func NewService(db *gorm.DB, media *media.Service, activity *activity.Service, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		slugs:    slug.ForArticles(db),
		media:    media,
		activity: activity,
		logger:   logger,
	}
}

// ValidateSubmission checks a submission without touching storage.
// Validation short-circuits before a transaction is opened.
func ValidateSubmission(req *SubmitRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return apperr.Validation("title is required")
	}
	if htmltext.IsEmpty(req.Content) {
		return apperr.Validation("content is required")
	}
	if req.Status != "" && !models.IsValidArticleStatus(req.Status) {
		return apperr.Validation("unknown status " + req.Status)
	}
	if req.Visibility != "" && !models.IsValidVisibility(req.Visibility) {
		return apperr.Validation("unknown visibility " + req.Visibility)
	}
	if models.ArticleVisibility(req.Visibility) == models.VisibilityPasswordProtected &&
		strings.TrimSpace(req.Password) == "" {
		return apperr.Validation("password is required for password protected articles")
	}
	return nil
}

// ResolveWriteStatus applies the publish gate: published status, whether
// requested directly or via the publish signal, requires publish_articles
// and is otherwise downgraded to pending. Never an error; the submission
// still lands.
func ResolveWriteStatus(actor *middleware.Actor, requested string, publish bool) models.ArticleStatus {
	status := models.ArticleStatus(requested)
	if status == "" {
		status = models.ArticleDraft
	}
	if publish {
		status = models.ArticlePublished
	}
	if status == models.ArticlePublished && !actor.Can(models.PermPublishArticles) {
		return models.ArticlePending
	}
	return status
}

// CanEdit reports whether the actor may modify the given author's article.
func CanEdit(actor *middleware.Actor, authorID string) bool {
	if actor == nil {
		return false
	}
	if actor.UserID == authorID {
		return actor.Can(models.PermEditArticles)
	}
	return actor.Can(models.PermEditOthersArticles)
}

// CanDelete reports whether the actor may delete the given author's article.
func CanDelete(actor *middleware.Actor, authorID string) bool {
	if actor == nil {
		return false
	}
	if actor.UserID == authorID {
		return actor.Can(models.PermDeleteArticles)
	}
	return actor.Can(models.PermDeleteOthersArticles)
}

// CanTransition reports whether the actor may apply a transition to the
// given author's article. Publish rides on the publish permission alone;
// draft and delete follow the own-versus-others split.
func CanTransition(actor *middleware.Actor, action, authorID string) bool {
	switch action {
	case ActionPublish:
		return actor.Can(models.PermPublishArticles)
	case ActionDraft:
		return CanEdit(actor, authorID)
	case ActionDelete:
		return CanDelete(actor, authorID)
	}
	return false
}

// Create validates, stores the optional image, and inserts the article with
// its associations in one transaction. The stored image is removed again if
// the transaction fails.
func (s *Service) Create(actor *middleware.Actor, req *SubmitRequest, image *multipart.FileHeader, ip string) (*models.ArticleModel, error) {
	if !actor.Can(models.PermEditArticles) {
		return nil, apperr.Forbidden("you may not create articles")
	}
	if err := ValidateSubmission(req); err != nil {
		return nil, err
	}

	resolved, err := s.slugs.Resolve(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	status := ResolveWriteStatus(actor, req.Status, req.Publish)

	var imagePath *string
	if image != nil {
		stored, err := s.media.Store(image, media.DirArticles, req.Title)
		if err != nil {
			return nil, err
		}
		imagePath = &stored
	}

	art := models.ArticleModel{
		Title:         strings.TrimSpace(req.Title),
		Slug:          resolved,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Status:        status,
		Visibility:    visibilityOrDefault(req.Visibility),
		Featured:      req.Featured,
		BreakingNews:  req.BreakingNews,
		FeaturedImage: imagePath,
		AuthorID:      actor.UserID,
	}
	if req.Visibility == string(models.VisibilityPasswordProtected) {
		pw := req.Password
		art.Password = &pw
	}
	if status == models.ArticlePublished {
		now := time.Now()
		art.PublishedAt = &now
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&art).Error; err != nil {
			return err
		}
		if err := s.associate(tx, &art, req.CategoryIDs, req.TagIDs, false); err != nil {
			return err
		}
		if err := s.activity.Record(tx, activity.Entry{
			UserID:      actor.UserID,
			Action:      "article.create",
			EntityType:  "article",
			EntityID:    art.ID,
			Description: fmt.Sprintf("created article %q", art.Title),
			IPAddress:   ip,
		}); err != nil {
			return err
		}
		if status == models.ArticlePublished {
			return s.activity.Record(tx, activity.Entry{
				UserID:      actor.UserID,
				Action:      "article.publish",
				EntityType:  "article",
				EntityID:    art.ID,
				Description: fmt.Sprintf("published article %q", art.Title),
				IPAddress:   ip,
			})
		}
		return nil
	})
	if err != nil {
		if imagePath != nil {
			s.media.RemoveQuietly(*imagePath)
		}
		return nil, classifyWriteError(err)
	}
	return &art, nil
}

// Update applies a submission to an existing article. The slug is only
// re-resolved when it actually changes.
func (s *Service) Update(actor *middleware.Actor, id string, req *SubmitRequest, image *multipart.FileHeader, ip string) (*models.ArticleModel, error) {
	var art models.ArticleModel
	if err := s.db.First(&art, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err, "article not found")
	}
	if !CanEdit(actor, art.AuthorID) {
		return nil, apperr.Forbidden("you may not edit this article")
	}
	if err := ValidateSubmission(req); err != nil {
		return nil, err
	}

	resolved, err := s.slugs.ResolveForUpdate(art.Slug, req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	status := ResolveWriteStatus(actor, req.Status, req.Publish)

	var newImage *string
	oldImage := art.FeaturedImage
	if image != nil {
		stored, err := s.media.Store(image, media.DirArticles, req.Title)
		if err != nil {
			return nil, err
		}
		newImage = &stored
	}

	wasPublished := art.Status == models.ArticlePublished

	art.Title = strings.TrimSpace(req.Title)
	art.Slug = resolved
	art.Content = req.Content
	art.Excerpt = req.Excerpt
	art.Status = status
	art.Visibility = visibilityOrDefault(req.Visibility)
	art.Featured = req.Featured
	art.BreakingNews = req.BreakingNews
	if art.Visibility == models.VisibilityPasswordProtected {
		pw := req.Password
		art.Password = &pw
	} else {
		art.Password = nil
	}
	if newImage != nil {
		art.FeaturedImage = newImage
	}
	if status == models.ArticlePublished && art.PublishedAt == nil {
		now := time.Now()
		art.PublishedAt = &now
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&art).Error; err != nil {
			return err
		}
		if err := s.associate(tx, &art, req.CategoryIDs, req.TagIDs, true); err != nil {
			return err
		}
		if err := s.activity.Record(tx, activity.Entry{
			UserID:      actor.UserID,
			Action:      "article.update",
			EntityType:  "article",
			EntityID:    art.ID,
			Description: fmt.Sprintf("updated article %q", art.Title),
			IPAddress:   ip,
		}); err != nil {
			return err
		}
		if status == models.ArticlePublished && !wasPublished {
			return s.activity.Record(tx, activity.Entry{
				UserID:      actor.UserID,
				Action:      "article.publish",
				EntityType:  "article",
				EntityID:    art.ID,
				Description: fmt.Sprintf("published article %q", art.Title),
				IPAddress:   ip,
			})
		}
		return nil
	})
	if err != nil {
		if newImage != nil {
			s.media.RemoveQuietly(*newImage)
		}
		return nil, classifyWriteError(err)
	}

	if newImage != nil && oldImage != nil && *oldImage != *newImage {
		s.media.RemoveQuietly(*oldImage)
	}
	return &art, nil
}

// Get loads one article with its associations. Actors without cross-author
// visibility only see their own or published articles.
func (s *Service) Get(actor *middleware.Actor, id string) (*models.ArticleModel, error) {
	var art models.ArticleModel
	err := s.db.Preload("Categories").Preload("Tags").Preload("Author").
		First(&art, "id = ?", id).Error
	if err != nil {
		return nil, asNotFound(err, "article not found")
	}
	if !canSee(actor, &art) {
		return nil, apperr.NotFound("article not found")
	}
	return &art, nil
}

func canSee(actor *middleware.Actor, art *models.ArticleModel) bool {
	if actor.CanAny(models.PermEditOthersArticles, models.PermViewOthersArticles) {
		return true
	}
	return art.AuthorID == actor.UserID || art.Status == models.ArticlePublished
}

// List runs the filtered, sorted, paginated admin listing. Rows carry the
// author username and comma-joined category names.
func (s *Service) List(actor *middleware.Actor, q ListQuery) ([]ListItem, response.Pagination, error) {
	query := s.db.Model(&models.ArticleModel{}).
		Joins("LEFT JOIN users ON users.id = articles.author_id")

	if !actor.CanAny(models.PermEditOthersArticles, models.PermViewOthersArticles) {
		query = query.Where("(articles.author_id = ? OR articles.status = ?)",
			actor.UserID, models.ArticlePublished)
	}
	if q.AuthorID != "" {
		query = query.Where("articles.author_id = ?", q.AuthorID)
	}
	if q.Status != "" {
		query = query.Where("articles.status = ?", q.Status)
	}
	if q.CategoryID != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM article_categories ac WHERE ac.article_model_id = articles.id AND ac.category_model_id = ?)",
			q.CategoryID)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where("(articles.title LIKE ? OR articles.content LIKE ?)", like, like)
	}

	// count before the enrichment select so count(*) stays valid SQL
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, response.Pagination{}, err
	}
	pageNum, totalPage := pagination.ClampPage(q.Page.Page, total, q.Page.Size)

	var rows []listRow
	err := query.
		Select("articles.*, users.username AS author_name").
		Order(q.Sort.Column() + " " + string(q.Dir)).
		Order("articles.id ASC").
		Offset((pageNum - 1) * q.Page.Size).
		Limit(q.Page.Size).
		Find(&rows).Error
	if err != nil {
		return nil, response.Pagination{}, err
	}
	page := response.Pagination{
		Total:       total,
		CurrentPage: pageNum,
		TotalPage:   totalPage,
		Size:        q.Page.Size,
		HasNextPage: pageNum < totalPage,
	}

	items := make([]ListItem, len(rows))
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
		items[i] = ListItem{
			ID:           r.ID,
			Title:        r.Title,
			Slug:         r.Slug,
			Status:       r.Status,
			AuthorID:     r.AuthorID,
			AuthorName:   r.AuthorName,
			Views:        r.Views,
			Featured:     r.Featured,
			BreakingNews: r.BreakingNews,
			CreatedAt:    r.CreatedAt,
			PublishedAt:  r.PublishedAt,
		}
	}

	names, err := s.categoryNames(ids)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	for i := range items {
		items[i].CategoryNames = names[items[i].ID]
	}
	return items, page, nil
}

type listRow struct {
	models.ArticleModel
	AuthorName string
}

// categoryNames returns the comma-joined category names per article id.
func (s *Service) categoryNames(articleIDs []string) (map[string]string, error) {
	if len(articleIDs) == 0 {
		return map[string]string{}, nil
	}
	var pairs []struct {
		ArticleModelID string
		Name           string
	}
	err := s.db.Table("article_categories").
		Select("article_categories.article_model_id, categories.name").
		Joins("JOIN categories ON categories.id = article_categories.category_model_id").
		Where("article_categories.article_model_id IN ?", articleIDs).
		Order("categories.name").
		Scan(&pairs).Error
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(articleIDs))
	for _, p := range pairs {
		if names[p.ArticleModelID] != "" {
			names[p.ArticleModelID] += ", "
		}
		names[p.ArticleModelID] += p.Name
	}
	return names, nil
}

// BulkTransition applies one action to every id, all or nothing. Permission
// is re-checked per article; a single failure rolls back the whole batch.
func (s *Service) BulkTransition(actor *middleware.Actor, ids []string, action, ip string) error {
	if len(ids) == 0 {
		return apperr.Validation("no articles selected")
	}
	switch action {
	case ActionPublish, ActionDraft, ActionDelete:
	default:
		return apperr.Validation("unknown action " + action)
	}
	if action == ActionPublish && !actor.Can(models.PermPublishArticles) {
		return apperr.Forbidden("you may not publish articles")
	}

	// image files are only removed once the whole batch has committed
	var orphanedImages []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			var art models.ArticleModel
			if err := tx.First(&art, "id = ?", id).Error; err != nil {
				return asNotFound(err, "article "+id+" not found")
			}
			if err := s.applyTransition(tx, actor, &art, action, ip); err != nil {
				return err
			}
			if action == ActionDelete && art.FeaturedImage != nil {
				orphanedImages = append(orphanedImages, *art.FeaturedImage)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, img := range orphanedImages {
		s.media.RemoveQuietly(img)
	}
	return nil
}

func (s *Service) applyTransition(tx *gorm.DB, actor *middleware.Actor, art *models.ArticleModel, action, ip string) error {
	switch action {
	case ActionPublish, ActionDraft:
		if !CanTransition(actor, action, art.AuthorID) {
			return apperr.Forbidden("you may not " + action + " article " + art.ID)
		}
		updates := map[string]interface{}{}
		var auditAction string
		if action == ActionPublish {
			updates["status"] = models.ArticlePublished
			if art.PublishedAt == nil {
				updates["published_at"] = time.Now()
			}
			auditAction = "article.publish"
		} else {
			updates["status"] = models.ArticleDraft
			auditAction = "article.draft"
		}
		if err := tx.Model(art).Updates(updates).Error; err != nil {
			return err
		}
		return s.activity.Record(tx, activity.Entry{
			UserID:      actor.UserID,
			Action:      auditAction,
			EntityType:  "article",
			EntityID:    art.ID,
			Description: fmt.Sprintf("%s article %q", action, art.Title),
			IPAddress:   ip,
		})

	case ActionDelete:
		if !CanTransition(actor, action, art.AuthorID) {
			return apperr.Forbidden("you may not delete article " + art.ID)
		}
		return s.deleteCascade(tx, actor, art, ip)
	}
	return apperr.Validation("unknown action " + action)
}

// deleteCascade removes association rows and comments before the article
// itself. The schema carries no ON DELETE CASCADE.
func (s *Service) deleteCascade(tx *gorm.DB, actor *middleware.Actor, art *models.ArticleModel, ip string) error {
	if err := tx.Exec("DELETE FROM article_categories WHERE article_model_id = ?", art.ID).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM article_tags WHERE article_model_id = ?", art.ID).Error; err != nil {
		return err
	}
	if err := tx.Where("article_id = ?", art.ID).Delete(&models.CommentModel{}).Error; err != nil {
		return err
	}
	if err := tx.Delete(art).Error; err != nil {
		return err
	}
	return s.activity.Record(tx, activity.Entry{
		UserID:      actor.UserID,
		Action:      "article.delete",
		EntityType:  "article",
		EntityID:    art.ID,
		Description: fmt.Sprintf("deleted article %q", art.Title),
		IPAddress:   ip,
	})
}

// associate replaces (or sets) the category and tag associations. Ids that
// do not resolve to a stored row are skipped without error.
func (s *Service) associate(tx *gorm.DB, art *models.ArticleModel, categoryIDs, tagIDs []string, replace bool) error {
	cats, err := existingCategories(tx, categoryIDs)
	if err != nil {
		return err
	}
	tags, err := existingTags(tx, tagIDs)
	if err != nil {
		return err
	}

	catAssoc := tx.Model(art).Association("Categories")
	tagAssoc := tx.Model(art).Association("Tags")
	if replace {
		if err := catAssoc.Replace(cats); err != nil {
			return err
		}
		return tagAssoc.Replace(tags)
	}
	if len(cats) > 0 {
		if err := catAssoc.Append(cats); err != nil {
			return err
		}
	}
	if len(tags) > 0 {
		return tagAssoc.Append(tags)
	}
	return nil
}

func existingCategories(tx *gorm.DB, ids []string) ([]models.CategoryModel, error) {
	ids = nonBlank(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.CategoryModel
	err := tx.Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

func existingTags(tx *gorm.DB, ids []string) ([]models.TagModel, error) {
	ids = nonBlank(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.TagModel
	err := tx.Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

func nonBlank(ids []string) []string {
	out := ids[:0:0]
	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			out = append(out, strings.TrimSpace(id))
		}
	}
	return out
}

func visibilityOrDefault(raw string) models.ArticleVisibility {
	if raw == "" {
		return models.VisibilityPublic
	}
	return models.ArticleVisibility(raw)
}

func classifyWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("slug is already in use")
	}
	return err
}

func asNotFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(msg)
	}
	return err
}
