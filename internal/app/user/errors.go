package user

import (
	domcommon "userhub/internal/domain/common"
)

func IsNotFound(err error) bool {
	return domcommon.IsNotFound(err)
}
