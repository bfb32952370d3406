package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt 只吃前 72 字节；x/crypto 对超长输入直接报错而不是截断，
// 这里统一截断，和 bcryptjs 的行为保持一致（超长密码照常注册、照常登录）。
const maxPasswordBytes = 72

func clampPassword(pw string) []byte {
	b := []byte(pw)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// bcrypt.DefaultCost = 10
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword(clampPassword(pw), bcrypt.DefaultCost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), clampPassword(pw)) == nil
}
