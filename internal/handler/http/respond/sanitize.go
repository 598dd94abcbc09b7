package respond

import (
	"regexp"
)

var (
	// クエリ文字列の API キー（画像ホストは ?key= で受け取る）
	queryKeyPattern = regexp.MustCompile(`([?&](?:key|api_key|token)=)[^&\s"']+`)

	// フォーム由来のパスワード
	passwordPattern = regexp.MustCompile(`("?password"?\s*[:=]\s*"?)[^"&\s,}]+`)

	// Cookie ヘッダーのセッション値
	cookiePattern = regexp.MustCompile(`\b((?:session_token|session|sid)[a-zA-Z0-9_.-]*=)[^;\s"]+`)

	// URL 内の認証情報
	userinfoPattern = regexp.MustCompile(`://([^:/\s]+):([^@/\s]+)@`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error())
}

// SanitizeString masks API keys, passwords, session cookies and URL credentials in s.
func SanitizeString(msg string) string {
	msg = queryKeyPattern.ReplaceAllString(msg, "${1}****")
	msg = passwordPattern.ReplaceAllString(msg, "${1}****")
	msg = cookiePattern.ReplaceAllString(msg, "${1}****")
	msg = userinfoPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
