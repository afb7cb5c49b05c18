package entity

// 활동 이벤트 타입
const (
	EventActivityCreated = "activity.created"
	EventPhotosAdded     = "photos.added"
	EventPhotoReplaced   = "photo.replaced"
	EventPhotoDeleted    = "photo.deleted"
)

// Event 외부로 발행되는 도메인 이벤트
type Event struct {
	Type       string
	ActivityID string
	StudentID  string
	PhotoIDs   []string
}
