package service

import (
	"strings"
	"unicode"
)

const minPasswordLength = 8

// 常见弱密码，命中即拒绝
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"iloveyou":    {},
	"sunshine":    {},
	"football":    {},
	"baseball":    {},
	"superman":    {},
	"whatever":    {},
	"trustno1":    {},
	"letmein1":    {},
	"welcome1":    {},
	"admin123":    {},
	"abc12345":    {},
	"dragon123":   {},
}

// ValidatePassword 密码强度校验，返回字段级错误信息，空 map 表示通过。
// 规则：长度 >= 8、不能是纯数字、不在常见弱密码表中、不能与用户名/邮箱过于相似
func ValidatePassword(password, username, email string) map[string]string {
	fields := map[string]string{}

	if len(password) < minPasswordLength {
		fields["password"] = "This password is too short. It must contain at least 8 characters."
		return fields
	}

	if isNumeric(password) {
		fields["password"] = "This password is entirely numeric."
		return fields
	}

	lower := strings.ToLower(password)
	if _, ok := commonPasswords[lower]; ok {
		fields["password"] = "This password is too common."
		return fields
	}

	if tooSimilar(lower, username) || tooSimilar(lower, emailLocalPart(email)) || tooSimilar(lower, email) {
		fields["password"] = "The password is too similar to the username or email."
		return fields
	}

	return fields
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// tooSimilar 密码包含属性值或属性值包含密码即视为过于相似
func tooSimilar(password, attribute string) bool {
	attribute = strings.ToLower(strings.TrimSpace(attribute))
	if len(attribute) < 3 {
		return false
	}
	return strings.Contains(password, attribute) || strings.Contains(attribute, password)
}

func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
