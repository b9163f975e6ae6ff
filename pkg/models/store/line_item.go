package store

type LineItem struct {
	Statement   string  `db:"statement"`
	Period      string  `db:"period"`
	Position    int     `db:"position"`
	AccountID   string  `db:"account_id"`
	AccountName string  `db:"account_name"`
	Value       float64 `db:"value"`
}
