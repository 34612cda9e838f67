package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"RecliqOps/internal/models"
)

const userColumns = `
        id, name, phone, email, type, status, role, city, zone,
        total_pickups, total_kg, points, suspend_reason, suspended_at, created_at, updated_at`

func scanUser(scanner interface {
	Scan(dest ...interface{}) error
}) (models.User, error) {
	var u models.User
	err := scanner.Scan(
		&u.ID, &u.Name, &u.Phone, &u.Email, &u.Type, &u.Status, &u.Role, &u.City, &u.Zone,
		&u.TotalPickups, &u.TotalKg, &u.Points, &u.SuspendReason, &u.SuspendedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// GetUsersList извлекает страницу пользователей по фильтру. В отличие от
// модулей дашборда, список пользователей фильтруется на стороне SQL:
// таблица растет неограниченно и не помещается в память целиком.
func GetUsersList(f models.UserListFilter) ([]models.User, models.Pagination, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argPos))
		args = append(args, value)
		argPos++
	}

	if f.Status != "" {
		addCondition("status = $%d", f.Status)
	}
	if f.Type != "" {
		addCondition("type = $%d", f.Type)
	}
	if f.City != "" {
		addCondition("city = $%d", f.City)
	}
	if f.Zone != "" {
		addCondition("zone = $%d", f.Zone)
	}
	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(id ILIKE $%d OR name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d)", argPos, argPos, argPos, argPos))
		args = append(args, "%"+f.Search+"%")
		argPos++
	}
	if f.DateFrom.Valid {
		addCondition("created_at >= $%d", f.DateFrom.Time)
	}
	if f.DateTo.Valid {
		addCondition("created_at <= $%d", f.DateTo.Time)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var pg models.Pagination
	if err := DB.QueryRow("SELECT COUNT(*) FROM users"+where, args...).Scan(&pg.Total); err != nil {
		log.Printf("GetUsersList: ошибка подсчета: %v", err)
		return nil, pg, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	pg.Page = page
	pg.Limit = limit
	pg.Pages = (pg.Total + limit - 1) / limit

	query := fmt.Sprintf("SELECT %s FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		userColumns, where, argPos, argPos+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := DB.Query(query, args...)
	if err != nil {
		log.Printf("GetUsersList: ошибка выборки: %v", err)
		return nil, pg, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, errScan := scanUser(rows)
		if errScan != nil {
			log.Printf("GetUsersList: ошибка сканирования строки: %v", errScan)
			continue
		}
		users = append(users, u)
	}
	return users, pg, rows.Err()
}

// SearchUsers ищет пользователей по подстроке имени, телефона, email или ID.
// Минимальная длина запроса проверяется обработчиком.
func SearchUsers(q string, limit int) ([]models.User, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	rows, err := DB.Query(
		"SELECT "+userColumns+" FROM users WHERE id ILIKE $1 OR name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1 ORDER BY name LIMIT $2",
		"%"+q+"%", limit)
	if err != nil {
		log.Printf("SearchUsers: ошибка поиска по '%s': %v", q, err)
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, errScan := scanUser(rows)
		if errScan != nil {
			log.Printf("SearchUsers: ошибка сканирования строки: %v", errScan)
			continue
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetUserByID извлекает пользователя вместе с журналом аудита.
func GetUserByID(id string) (models.User, error) {
	u, err := scanUser(DB.QueryRow("SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, fmt.Errorf("пользователь %s: %w", id, models.ErrNotFound)
		}
		log.Printf("GetUserByID: ошибка получения %s: %v", id, err)
		return u, err
	}
	u.AuditTrail, err = GetAuditTrail(ENTITY_USER, id)
	return u, err
}

// ApplyUserAction применяет действие админа к пользователю в одной транзакции.
func ApplyUserAction(id, action string, payload models.UserActionPayload, actor string) (models.User, models.Notification, error) {
	var note models.Notification

	tx, err := DB.Begin()
	if err != nil {
		log.Printf("ApplyUserAction: ошибка начала транзакции: %v", err)
		return models.User{}, note, err
	}
	defer tx.Rollback()

	u, err := scanUser(tx.QueryRow("SELECT "+userColumns+" FROM users WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, note, fmt.Errorf("пользователь %s: %w", id, models.ErrNotFound)
		}
		log.Printf("ApplyUserAction: ошибка получения %s: %v", id, err)
		return u, note, err
	}

	updated, note, err := models.ApplyUserActionOne(u, action, payload, actor)
	if err != nil {
		return u, note, err
	}

	_, err = tx.Exec(`
        UPDATE users
        SET status=$1, suspend_reason=$2, suspended_at=$3, updated_at=$4
        WHERE id=$5`,
		updated.Status, updated.SuspendReason, updated.SuspendedAt, updated.UpdatedAt, id)
	if err != nil {
		log.Printf("ApplyUserAction: ошибка обновления %s: %v", id, err)
		return u, note, err
	}

	for _, entry := range updated.AuditTrail[len(u.AuditTrail):] {
		if err = insertAuditEntryTx(tx, ENTITY_USER, entry); err != nil {
			return u, note, err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Printf("ApplyUserAction: ошибка фиксации транзакции для %s: %v", id, err)
		return u, note, err
	}

	log.Printf("Пользователь %s: действие '%s' выполнено (%s).", id, action, actor)
	return updated, note, nil
}

// InsertUser добавляет пользователя. Используется начальным заполнением.
func InsertUser(u models.User) error {
	_, err := DB.Exec(`
        INSERT INTO users (`+userColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		u.ID, u.Name, u.Phone, u.Email, u.Type, u.Status, u.Role, u.City, u.Zone,
		u.TotalPickups, u.TotalKg, u.Points, u.SuspendReason, u.SuspendedAt, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		log.Printf("InsertUser: ошибка добавления %s: %v", u.ID, err)
	}
	return err
}

// CountUsers возвращает общее число пользователей и число заблокированных.
func CountUsers() (total int, suspended int, err error) {
	err = DB.QueryRow(`
        SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'suspended')
        FROM users`).Scan(&total, &suspended)
	if err != nil {
		log.Printf("CountUsers: ошибка подсчета: %v", err)
	}
	return total, suspended, err
}
