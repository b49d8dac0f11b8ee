package services

import (
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/email"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/fileaccess"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService        AuthService
	ProfileService     ProfileService
	PostService        PostService
	ApplicationService ApplicationService
	DocumentService    DocumentService
	ChatService        ChatService
	UploadService      UploadService
	FileAccessService  *fileaccess.Service
	EmailService       email.Provider
}
