package errno

import "fmt"

// BizError attaches a cause to an Errno for logging while keeping the code
// comparable with errors.Is.
type BizError struct {
	Errno *Errno
	Cause error
}

// NewBizError 包装业务错误与底层原因
func NewBizError(errno *Errno, cause error) *BizError {
	return &BizError{Errno: errno, Cause: cause}
}

func (e *BizError) Error() string {
	if e.Cause == nil {
		return e.Errno.Message
	}
	return fmt.Sprintf("%s: %v", e.Errno.Message, e.Cause)
}

// Unwrap exposes the Errno so errors.Is(err, errno.ErrX) matches.
func (e *BizError) Unwrap() error {
	return e.Errno
}
