package tui

type View int

const (
	ViewSearch View = iota
	ViewSong
	ViewHistory
	ViewDeleteConfirm
)
