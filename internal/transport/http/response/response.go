package response

import "github.com/gin-gonic/gin"

// 响应一律 {success, message?, ...payload}，payload 键拍平在顶层

func OK(kv gin.H) gin.H {
	out := gin.H{"success": true}
	for k, v := range kv {
		out[k] = v
	}
	return out
}

func Fail(msg string) gin.H {
	return gin.H{"success": false, "message": msg}
}
