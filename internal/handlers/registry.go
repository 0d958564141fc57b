package handlers

// AppHandlers bundles the constructed handlers for route registration.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	CandidateHandler    *CandidateHandler
	NotificationHandler *NotificationHandler
	RealtimeHandler     *RealtimeHandler
}
