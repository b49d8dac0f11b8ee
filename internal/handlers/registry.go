package handlers

// AppHandlers holds every HTTP handler the router registers.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	ProfileHandler     *ProfileHandler
	PostHandler        *PostHandler
	ApplicationHandler *ApplicationHandler
	DocumentHandler    *DocumentHandler
	ChatHandler        *ChatHandler
	FileHandler        *FileHandler
}
