package components

// NavigateMsg asks the root model to move to Page.
type NavigateMsg struct{ Page string }

// BackMsg asks the root model for a native back move.
type BackMsg struct{}

// LogoutMsg asks the root model to end the session.
type LogoutMsg struct{}

// StatusMsg replaces the status bar text.
type StatusMsg struct{ Text string }
