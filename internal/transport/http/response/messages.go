package response

// 对外成功文案集中管理，和既有客户端断言保持一字不差
const (
	MsgRegistered   = "User registered successfully"
	MsgLoginOK      = "Login successful"
	MsgTasksFetched = "All tasks fetched successfully"
	MsgTaskUpdated  = "Task updated successfully"
	MsgTaskDeleted  = "Task deleted successfully"
	MsgServerError  = "Server error"
)
