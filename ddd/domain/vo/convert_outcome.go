package vo

// ConvertOutcome 封装一次外部转码调用的结果。失败以值返回，永不越过
// 适配器边界抛出；Diagnostic 仅用于日志，不展示给最终用户。
type ConvertOutcome struct {
	success    bool
	diagnostic string
	err        error
}

// NewConvertSuccess 构造成功结果。
func NewConvertSuccess() ConvertOutcome {
	return ConvertOutcome{success: true}
}

// NewConvertFailure 构造失败结果，携带进程错误与stderr诊断文本。
func NewConvertFailure(err error, diagnostic string) ConvertOutcome {
	return ConvertOutcome{success: false, err: err, diagnostic: diagnostic}
}

// Success 转码是否成功（外部进程退出码为0）。
func (o ConvertOutcome) Success() bool {
	return o.success
}

// Diagnostic 返回捕获的stderr诊断文本。
func (o ConvertOutcome) Diagnostic() string {
	return o.diagnostic
}

// Err 返回底层进程错误（失败时非nil）。
func (o ConvertOutcome) Err() error {
	return o.err
}
