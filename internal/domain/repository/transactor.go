package repository

import "context"

// Transactor fn 안의 저장소 호출을 하나의 트랜잭션으로 묶습니다.
// 트랜잭션은 fn에 전달되는 ctx에 실려 있으며, fn이 에러를 반환하면 롤백됩니다.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
