package employee

// Employee は社員レコードです。ID は権威サーバーが採番する主キーで、
// 削除時の照合にはこちらを使います。EmployeeID は作成時にクライアントが
// 指定する人間向けコードで、作成後は不変、他コレクションとの結合キーです。
type Employee struct {
	ID         string
	EmployeeID string
	FullName   string
	Email      string
	Department string
}

// Draft は社員作成時の入力です。ID は権威サーバーが採番するため含みません。
type Draft struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
}
