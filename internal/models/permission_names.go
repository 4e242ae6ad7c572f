package models

// Permission names referenced by handlers and services. The catalog seeded
// at startup must stay in sync with this list.
const (
	PermPublishArticles     = "publish_articles"
	PermEditArticles        = "edit_articles"
	PermEditOthersArticles  = "edit_others_articles"
	PermViewOthersArticles  = "view_others_articles"
	PermDeleteArticles      = "delete_articles"
	PermDeleteOthersArticles = "delete_others_articles"
	PermManagePages         = "manage_pages"
	PermManageCategories    = "manage_categories"
	PermModerateComments    = "moderate_comments"
	PermManageUsers         = "manage_users"
	PermDeleteUsers         = "delete_users"
	PermManageRoles         = "manage_roles"
	PermManageSettings      = "manage_settings"
	PermUploadFiles         = "upload_files"
	PermViewActivityLog     = "view_activity_log"
)
