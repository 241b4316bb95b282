package context

import (
	"context"

	"github.com/nlhsang/chat-account/constant"
)

func GetAccountID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.AccountIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
