package domain

// Principal - аутентифицированная личность запроса. Разрешение доступа
// принимается один раз на вызов по этому объекту вместо разрозненных
// проверок сессии в каждой операции.
type Principal struct {
	Username string `json:"username"`
}

// Anonymous сообщает, что личность не установлена.
func (p *Principal) Anonymous() bool {
	return p == nil || p.Username == ""
}
