package attendance

// Status は勤怠の状態を表します。
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Record は勤怠レコードです。Date は時刻成分を持たない ISO 8601 の
// YYYY-MM-DD 文字列です。同一 (employeeId, date) の重複排除は権威サーバーの
// 責務で、クライアント側では行いません。
type Record struct {
	ID       string
	Employee EmployeeSnapshot
	Date     string
	Status   Status
}

// EmployeeSnapshot はレコードに埋め込まれた社員情報の非正規化コピーです。
// Employee Store への生きた参照ではないため、双方が再取得されるまで
// 両者は食い違い得ます。
type EmployeeSnapshot struct {
	ID         string
	EmployeeID string
	FullName   string
	Email      string
	Department string
}
