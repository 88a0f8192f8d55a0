//go:build mysql
// +build mysql

// Package mysql is a database adapter for MySQL.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	ms "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/livelog/livelog/server/store"
	t "github.com/livelog/livelog/server/store/types"
)

// adapter holds the MySQL connection.
type adapter struct {
	db     *sqlx.DB
	dsn    string
	dbName string
	// Maximum number of records to return.
	maxResults int
	version    int

	// Single query timeout.
	sqlTimeout time.Duration
	// DB transaction timeout.
	txTimeout time.Duration
}

const (
	defaultDSN = "root:@tcp(localhost:3306)/livelog?parseTime=true&collation=utf8mb4_unicode_ci"

	adpVersion  = 100
	adapterName = "mysql"

	defaultMaxResults = 1024

	// If DB request timeout is specified,
	// we allocate txTimeoutMultiplier times more time for transactions.
	txTimeoutMultiplier = 1.5
)

type configType struct {
	// Full DSN, see https://github.com/go-sql-driver/mysql#dsn-data-source-name.
	DSN string `json:"dsn,omitempty"`

	// Connection pool settings.
	MaxOpenConns int `json:"max_open_conns,omitempty"`
	MaxIdleConns int `json:"max_idle_conns,omitempty"`
	// Maximum amount of time a connection may be reused (in seconds).
	ConnMaxLifetime int `json:"conn_max_lifetime,omitempty"`

	// DB request timeout (in seconds). If 0 (or negative), no timeout is applied.
	SqlTimeout int `json:"sql_timeout,omitempty"`
}

// queryEx is the subset of operations common to the connection and a transaction.
type queryEx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// scannable is implemented by both sql.Row and sql.Rows.
type scannable interface {
	Scan(dest ...interface{}) error
}

func (a *adapter) getContext() (context.Context, context.CancelFunc) {
	if a.sqlTimeout > 0 {
		return context.WithTimeout(context.Background(), a.sqlTimeout)
	}
	return context.Background(), nil
}

func (a *adapter) getContextForTx() (context.Context, context.CancelFunc) {
	if a.txTimeout > 0 {
		return context.WithTimeout(context.Background(), a.txTimeout)
	}
	return context.Background(), nil
}

// Open initializes the database connection.
func (a *adapter) Open(jsonconfig json.RawMessage) error {
	if a.db != nil {
		return errors.New("mysql adapter is already connected")
	}

	if len(jsonconfig) < 2 {
		return errors.New("adapter mysql missing config")
	}

	var err error
	var config configType
	if err = json.Unmarshal(jsonconfig, &config); err != nil {
		return errors.New("adapter mysql failed to parse config: " + err.Error())
	}

	a.dsn = config.DSN
	if a.dsn == "" {
		a.dsn = defaultDSN
	}

	dsnConf, err := ms.ParseDSN(a.dsn)
	if err != nil {
		return errors.New("adapter mysql failed to parse DSN: " + err.Error())
	}
	if !dsnConf.ParseTime {
		return errors.New("adapter mysql DSN must include parseTime=true")
	}
	a.dbName = dsnConf.DBName

	if a.maxResults <= 0 {
		a.maxResults = defaultMaxResults
	}

	a.db, err = sqlx.Open("mysql", a.dsn)
	if err != nil {
		return err
	}

	// sqlx.Open does not open the network connection.
	// Force network connection here.
	err = a.db.Ping()
	if isMissingDb(err) {
		// Missing DB is OK if we are initializing the database.
		err = nil
	}
	if err != nil {
		a.db.Close()
		a.db = nil
		return err
	}

	if config.MaxOpenConns > 0 {
		a.db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		a.db.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		a.db.SetConnMaxLifetime(time.Duration(config.ConnMaxLifetime) * time.Second)
	}
	if config.SqlTimeout > 0 {
		a.sqlTimeout = time.Duration(config.SqlTimeout) * time.Second
		a.txTimeout = time.Duration(float64(config.SqlTimeout)*txTimeoutMultiplier) * time.Second
	}

	a.version = -1

	return nil
}

// Close closes the underlying database connection.
func (a *adapter) Close() error {
	var err error
	if a.db != nil {
		err = a.db.Close()
		a.db = nil
		a.version = -1
	}
	return err
}

// IsOpen returns true if the connection has been established. It does not
// check if the connection is actually live.
func (a *adapter) IsOpen() bool {
	return a.db != nil
}

// GetDbVersion returns the current database version.
func (a *adapter) GetDbVersion() (int, error) {
	if a.version > 0 {
		return a.version, nil
	}

	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	var vers string
	err := a.db.QueryRowContext(ctx, "SELECT `value` FROM kvmeta WHERE `key`=?", "version").Scan(&vers)
	if err != nil {
		if isMissingDb(err) || isMissingTable(err) || err == sql.ErrNoRows {
			err = errors.New("Database not initialized")
		}
		return -1, err
	}

	a.version, _ = strconv.Atoi(vers)

	return a.version, nil
}

// CheckDbVersion checks whether the actual DB version matches the expected version of this adapter.
func (a *adapter) CheckDbVersion() error {
	version, err := a.GetDbVersion()
	if err != nil {
		return err
	}

	if version != adpVersion {
		return errors.New("Invalid database version " + strconv.Itoa(version) +
			". Expected " + strconv.Itoa(adpVersion))
	}

	return nil
}

// Version returns adapter version.
func (adapter) Version() int {
	return adpVersion
}

// Stats returns the DB connection stats object.
func (a *adapter) Stats() interface{} {
	if a.db == nil {
		return nil
	}
	return a.db.Stats()
}

// GetName returns string that adapter uses to register itself with store.
func (a *adapter) GetName() string {
	return adapterName
}

// SetMaxResults configures how many results can be returned in a single DB call.
func (a *adapter) SetMaxResults(val int) error {
	if val <= 0 {
		a.maxResults = defaultMaxResults
	} else {
		a.maxResults = val
	}
	return nil
}

// CreateDb creates the database, optionally dropping an existing one first.
func (a *adapter) CreateDb(reset bool) error {
	var err error

	ctx, cancel := a.getContextForTx()
	if cancel != nil {
		defer cancel()
	}

	if reset {
		if _, err = a.db.ExecContext(ctx, "DROP DATABASE IF EXISTS "+a.dbName); err != nil {
			return err
		}
	}

	if _, err = a.db.ExecContext(ctx,
		"CREATE DATABASE "+a.dbName+" CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci"); err != nil {
		return err
	}

	if _, err = a.db.ExecContext(ctx, "USE "+a.dbName); err != nil {
		return err
	}

	ddl := []string{
		"CREATE TABLE kvmeta(" +
			"`key`   VARCHAR(32)," +
			"`value` TEXT," +
			"PRIMARY KEY(`key`))",
		`CREATE TABLE users(
			id        BIGINT NOT NULL,
			createdat DATETIME(3) NOT NULL,
			updatedat DATETIME(3) NOT NULL,
			name      VARCHAR(64) NOT NULL,
			isadmin   TINYINT NOT NULL DEFAULT 0,
			color_r   SMALLINT NOT NULL DEFAULT 0,
			color_g   SMALLINT NOT NULL DEFAULT 0,
			color_b   SMALLINT NOT NULL DEFAULT 0,
			PRIMARY KEY(id),
			UNIQUE INDEX users_name(name))`,
		`CREATE TABLE tokens(
			token     VARBINARY(64) NOT NULL,
			userid    BIGINT NOT NULL,
			createdat DATETIME(3) NOT NULL,
			expiresat DATETIME(3),
			PRIMARY KEY(token),
			FOREIGN KEY(userid) REFERENCES users(id) ON DELETE CASCADE)`,
		`CREATE TABLE events(
			id        BIGINT NOT NULL,
			createdat DATETIME(3) NOT NULL,
			updatedat DATETIME(3) NOT NULL,
			name      VARCHAR(255) NOT NULL,
			startat   DATETIME(3) NOT NULL,
			PRIMARY KEY(id))`,
		`CREATE TABLE permission_groups(
			id        BIGINT NOT NULL,
			createdat DATETIME(3) NOT NULL,
			updatedat DATETIME(3) NOT NULL,
			name      VARCHAR(64) NOT NULL,
			PRIMARY KEY(id),
			UNIQUE INDEX permission_groups_name(name))`,
		`CREATE TABLE permission_group_events(
			groupid BIGINT NOT NULL,
			eventid BIGINT NOT NULL,
			level   SMALLINT NOT NULL,
			PRIMARY KEY(groupid, eventid),
			FOREIGN KEY(groupid) REFERENCES permission_groups(id) ON DELETE CASCADE,
			FOREIGN KEY(eventid) REFERENCES events(id) ON DELETE CASCADE)`,
		`CREATE TABLE permission_group_users(
			groupid BIGINT NOT NULL,
			userid  BIGINT NOT NULL,
			PRIMARY KEY(groupid, userid),
			FOREIGN KEY(groupid) REFERENCES permission_groups(id) ON DELETE CASCADE,
			FOREIGN KEY(userid) REFERENCES users(id) ON DELETE CASCADE)`,
		`CREATE TABLE entry_types(
			id             BIGINT NOT NULL,
			createdat      DATETIME(3) NOT NULL,
			updatedat      DATETIME(3) NOT NULL,
			name           VARCHAR(64) NOT NULL,
			description    TEXT NOT NULL,
			color_r        SMALLINT NOT NULL DEFAULT 0,
			color_g        SMALLINT NOT NULL DEFAULT 0,
			color_b        SMALLINT NOT NULL DEFAULT 0,
			requireendtime TINYINT NOT NULL DEFAULT 0,
			PRIMARY KEY(id))`,
		`CREATE TABLE entry_type_events(
			typeid  BIGINT NOT NULL,
			eventid BIGINT NOT NULL,
			PRIMARY KEY(typeid, eventid),
			FOREIGN KEY(typeid) REFERENCES entry_types(id) ON DELETE CASCADE,
			FOREIGN KEY(eventid) REFERENCES events(id) ON DELETE CASCADE)`,
		`CREATE TABLE tags(
			id          BIGINT NOT NULL,
			createdat   DATETIME(3) NOT NULL,
			updatedat   DATETIME(3) NOT NULL,
			name        VARCHAR(96) NOT NULL,
			description TEXT NOT NULL,
			PRIMARY KEY(id),
			UNIQUE INDEX tags_name(name))`,
		`CREATE TABLE entries(
			id            BIGINT NOT NULL,
			createdat     DATETIME(3) NOT NULL,
			updatedat     DATETIME(3) NOT NULL,
			eventid       BIGINT NOT NULL,
			startat       DATETIME(3) NOT NULL,
			endat         DATETIME(3),
			endincomplete TINYINT NOT NULL DEFAULT 0,
			typeid        BIGINT NOT NULL,
			description   TEXT NOT NULL,
			medialinks    JSON,
			submitter     VARCHAR(255) NOT NULL DEFAULT '',
			videoedit     SMALLINT NOT NULL DEFAULT 0,
			postermoment  TINYINT NOT NULL DEFAULT 0,
			notes         TEXT NOT NULL,
			editorid      BIGINT,
			giveaway      TINYINT NOT NULL DEFAULT 0,
			sortkey       INT,
			parentid      BIGINT,
			PRIMARY KEY(id),
			INDEX entries_eventid_startat(eventid, startat),
			FOREIGN KEY(eventid) REFERENCES events(id) ON DELETE CASCADE)`,
		`CREATE TABLE entry_tags(
			entryid BIGINT NOT NULL,
			tagid   BIGINT NOT NULL,
			PRIMARY KEY(entryid, tagid),
			FOREIGN KEY(entryid) REFERENCES entries(id) ON DELETE CASCADE,
			FOREIGN KEY(tagid) REFERENCES tags(id) ON DELETE CASCADE)`,
		`CREATE TABLE entry_history(
			id        BIGINT NOT NULL AUTO_INCREMENT,
			entryid   BIGINT NOT NULL,
			editorid  BIGINT,
			createdat DATETIME(3) NOT NULL,
			entry     JSON NOT NULL,
			PRIMARY KEY(id),
			INDEX entry_history_entryid(entryid))`,
		`CREATE TABLE editors(
			eventid BIGINT NOT NULL,
			userid  BIGINT NOT NULL,
			PRIMARY KEY(eventid, userid),
			FOREIGN KEY(eventid) REFERENCES events(id) ON DELETE CASCADE,
			FOREIGN KEY(userid) REFERENCES users(id) ON DELETE CASCADE)`,
		`CREATE TABLE event_log_tabs(
			id        BIGINT NOT NULL,
			createdat DATETIME(3) NOT NULL,
			updatedat DATETIME(3) NOT NULL,
			eventid   BIGINT NOT NULL,
			name      VARCHAR(64) NOT NULL,
			startat   DATETIME(3) NOT NULL,
			PRIMARY KEY(id),
			INDEX event_log_tabs_eventid(eventid),
			FOREIGN KEY(eventid) REFERENCES events(id) ON DELETE CASCADE)`,
		`CREATE TABLE info_pages(
			id        BIGINT NOT NULL,
			createdat DATETIME(3) NOT NULL,
			updatedat DATETIME(3) NOT NULL,
			eventid   BIGINT NOT NULL,
			title     VARCHAR(255) NOT NULL,
			contents  TEXT NOT NULL,
			PRIMARY KEY(id),
			INDEX info_pages_eventid(eventid),
			FOREIGN KEY(eventid) REFERENCES events(id) ON DELETE CASCADE)`,
		`CREATE TABLE applications(
			id         BIGINT NOT NULL,
			createdat  DATETIME(3) NOT NULL,
			updatedat  DATETIME(3) NOT NULL,
			name       VARCHAR(64) NOT NULL,
			readlog    TINYINT NOT NULL DEFAULT 0,
			writelinks TINYINT NOT NULL DEFAULT 0,
			authkey    VARBINARY(64),
			PRIMARY KEY(id),
			UNIQUE INDEX applications_name(name))`,
	}
	for _, stmt := range ddl {
		if _, err = a.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	if _, err = a.db.ExecContext(ctx, "INSERT INTO kvmeta(`key`, `value`) VALUES(?, ?)",
		"version", strconv.Itoa(adpVersion)); err != nil {
		return err
	}

	return nil
}

// Users.

const userColumns = "id,createdat,updatedat,name,isadmin,color_r,color_g,color_b"

func scanUser(row scannable) (*t.User, error) {
	var user t.User
	var id int64
	if err := row.Scan(&id, &user.CreatedAt, &user.UpdatedAt, &user.Name, &user.IsAdmin,
		&user.Color.R, &user.Color.G, &user.Color.B); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	user.SetUid(store.EncodeUid(id))
	return &user, nil
}

// UserGet returns the record for the given user id.
func (a *adapter) UserGet(uid t.Uid) (*t.User, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	return scanUser(a.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=?", store.DecodeUid(uid)))
}

// UserGetAll returns all user records.
func (a *adapter) UserGetAll() ([]t.User, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	rows, err := a.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY name LIMIT ?", a.maxResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []t.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// UserGetByToken returns the user holding the given live session token.
func (a *adapter) UserGetByToken(token []byte) (*t.User, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	cols := "u.id,u.createdat,u.updatedat,u.name,u.isadmin,u.color_r,u.color_g,u.color_b"
	return scanUser(a.db.QueryRowContext(ctx,
		"SELECT "+cols+" FROM users u JOIN tokens tk ON tk.userid=u.id "+
			"WHERE tk.token=? AND (tk.expiresat IS NULL OR tk.expiresat>?)",
		token, t.TimeNow()))
}

// UserUpdate updates a user record.
func (a *adapter) UserUpdate(user *t.User) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	res, err := a.db.ExecContext(ctx,
		"UPDATE users SET updatedat=?,name=?,isadmin=?,color_r=?,color_g=?,color_b=? WHERE id=?",
		user.UpdatedAt, user.Name, user.IsAdmin, user.Color.R, user.Color.G, user.Color.B,
		store.DecodeUid(user.Uid()))
	if err == nil {
		if count, _ := res.RowsAffected(); count == 0 {
			err = t.ErrNotFound
		}
	}
	return decodeError(err)
}

// Events.

func scanEvent(row scannable) (*t.Event, error) {
	var event t.Event
	var id int64
	if err := row.Scan(&id, &event.CreatedAt, &event.UpdatedAt, &event.Name, &event.StartAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	event.SetUid(store.EncodeUid(id))
	return &event, nil
}

// EventGet loads a single event by id.
func (a *adapter) EventGet(id t.Uid) (*t.Event, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	return scanEvent(a.db.QueryRowContext(ctx,
		"SELECT id,createdat,updatedat,name,startat FROM events WHERE id=?", store.DecodeUid(id)))
}

// EventGetAll returns all event records.
func (a *adapter) EventGetAll() ([]t.Event, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	rows, err := a.db.QueryContext(ctx,
		"SELECT id,createdat,updatedat,name,startat FROM events ORDER BY startat DESC LIMIT ?", a.maxResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []t.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

// EventUpsert creates or updates an event record, then reads the canonical
// record back.
func (a *adapter) EventUpsert(event *t.Event) (*t.Event, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	decoded := store.DecodeUid(event.Uid())
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO events(id,createdat,updatedat,name,startat) VALUES(?,?,?,?,?)
		ON DUPLICATE KEY UPDATE updatedat=VALUES(updatedat),name=VALUES(name),startat=VALUES(startat)`,
		decoded, event.CreatedAt, event.UpdatedAt, event.Name, event.StartAt)
	if err != nil {
		return nil, decodeError(err)
	}
	canonical, err := scanEvent(a.db.QueryRowContext(ctx,
		"SELECT id,createdat,updatedat,name,startat FROM events WHERE id=?", decoded))
	if err != nil {
		return nil, decodeError(err)
	}
	return canonical, nil
}

// Permission groups.

// GroupGetAll returns all permission groups.
func (a *adapter) GroupGetAll() ([]t.PermissionGroup, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	rows, err := a.db.QueryContext(ctx,
		"SELECT id,createdat,updatedat,name FROM permission_groups ORDER BY name LIMIT ?", a.maxResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []t.PermissionGroup
	for rows.Next() {
		var group t.PermissionGroup
		var id int64
		if err = rows.Scan(&id, &group.CreatedAt, &group.UpdatedAt, &group.Name); err != nil {
			return nil, err
		}
		group.SetUid(store.EncodeUid(id))
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// GroupUpsert creates or updates a permission group, then reads the
// canonical record back.
func (a *adapter) GroupUpsert(group *t.PermissionGroup) (*t.PermissionGroup, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	decoded := store.DecodeUid(group.Uid())
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO permission_groups(id,createdat,updatedat,name) VALUES(?,?,?,?)
		ON DUPLICATE KEY UPDATE updatedat=VALUES(updatedat),name=VALUES(name)`,
		decoded, group.CreatedAt, group.UpdatedAt, group.Name)
	if err != nil {
		return nil, decodeError(err)
	}
	var canonical t.PermissionGroup
	var id int64
	err = a.db.QueryRowContext(ctx,
		"SELECT id,createdat,updatedat,name FROM permission_groups WHERE id=?", decoded).Scan(
		&id, &canonical.CreatedAt, &canonical.UpdatedAt, &canonical.Name)
	if err != nil {
		return nil, decodeError(err)
	}
	canonical.SetUid(store.EncodeUid(id))
	return &canonical, nil
}

// GroupDelete deletes a group. Grants and memberships go with it.
func (a *adapter) GroupDelete(id t.Uid) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	res, err := a.db.ExecContext(ctx, "DELETE FROM permission_groups WHERE id=?", store.DecodeUid(id))
	if err == nil {
		if count, _ := res.RowsAffected(); count == 0 {
			err = t.ErrNotFound
		}
	}
	return decodeError(err)
}

// GroupEventGetAll returns all group-on-event grants.
func (a *adapter) GroupEventGetAll() ([]t.GroupEventGrant, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	rows, err := a.db.QueryContext(ctx,
		"SELECT groupid,eventid,level FROM permission_group_events LIMIT ?", a.maxResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []t.GroupEventGrant
	for rows.Next() {
		var group, event int64
		var level int
		if err = rows.Scan(&group, &event, &level); err != nil {
			return nil, err
		}
		grants = append(grants, t.GroupEventGrant{
			Group: store.EncodeUid(group),
			Event: store.EncodeUid(event),
			Level: t.PermissionLevel(level),
		})
	}
	return grants, rows.Err()
}

// GroupEventSet creates or updates a grant.
func (a *adapter) GroupEventSet(grant *t.GroupEventGrant) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO permission_group_events(groupid,eventid,level) VALUES(?,?,?)
		ON DUPLICATE KEY UPDATE level=VALUES(level)`,
		store.DecodeUid(grant.Group), store.DecodeUid(grant.Event), int(grant.Level))
	return decodeError(err)
}

// GroupEventUnset removes a grant.
func (a *adapter) GroupEventUnset(group, event t.Uid) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	res, err := a.db.ExecContext(ctx,
		"DELETE FROM permission_group_events WHERE groupid=? AND eventid=?",
		store.DecodeUid(group), store.DecodeUid(event))
	if err == nil {
		if count, _ := res.RowsAffected(); count == 0 {
			err = t.ErrNotFound
		}
	}
	return decodeError(err)
}

// GroupUserGetAll returns all group memberships.
func (a *adapter) GroupUserGetAll() ([]t.GroupUserPair, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	rows, err := a.db.QueryContext(ctx,
		"SELECT groupid,userid FROM permission_group_users LIMIT ?", a.maxResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []t.GroupUserPair
	for rows.Next() {
		var group, user int64
		if err = rows.Scan(&group, &user); err != nil {
			return nil, err
		}
		pairs = append(pairs, t.GroupUserPair{Group: store.EncodeUid(group), User: store.EncodeUid(user)})
	}
	return pairs, rows.Err()
}

// GroupUserAdd adds a user to a group.
func (a *adapter) GroupUserAdd(group, user t.Uid) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	_, err := a.db.ExecContext(ctx,
		"INSERT INTO permission_group_users(groupid,userid) VALUES(?,?)",
		store.DecodeUid(group), store.DecodeUid(user))
	return decodeError(err)
}

// GroupUserRemove removes a user from a group.
func (a *adapter) GroupUserRemove(group, user t.Uid) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	res, err := a.db.ExecContext(ctx,
		"DELETE FROM permission_group_users WHERE groupid=? AND userid=?",
		store.DecodeUid(group), store.DecodeUid(user))
	if err == nil {
		if count, _ := res.RowsAffected(); count == 0 {
			err = t.ErrNotFound
		}
	}
	return decodeError(err)
}

// PermissionForUserEvent returns the highest level granted to the user on
// the event across all group memberships.
func (a *adapter) PermissionForUserEvent(user, event t.Uid) (t.PermissionLevel, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	var level int
	err := a.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(ge.level),0) FROM permission_group_events ge
		JOIN permission_group_users gu ON gu.groupid=ge.groupid
		WHERE gu.userid=? AND ge.eventid=?`,
		store.DecodeUid(user), store.DecodeUid(event)).Scan(&level)
	if err != nil {
		return t.PermissionNone, decodeError(err)
	}
	return t.PermissionLevel(level), nil
}

// Entry types.

const typeColumns = "id,createdat,updatedat,name,description,color_r,color_g,color_b,requireendtime"

func scanEntryType(row scannable) (*t.EntryType, error) {
	var et t.EntryType
	var id int64
	if err := row.Scan(&id, &et.CreatedAt, &et.UpdatedAt, &et.Name, &et.Description,
		&et.Color.R, &et.Color.G, &et.Color.B, &et.RequireEndTime); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	et.SetUid(store.EncodeUid(id))
	return &et, nil
}

func (a *adapter) typeSelect(query string, args ...interface{}) ([]t.EntryType, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ets []t.EntryType
	for rows.Next() {
		et, err := scanEntryType(rows)
		if err != nil {
			return nil, err
		}
		ets = append(ets, *et)
	}
	return ets, rows.Err()
}

// TypeGetAll returns all entry types.
func (a *adapter) TypeGetAll() ([]t.EntryType, error) {
	return a.typeSelect("SELECT " + typeColumns + " FROM entry_types ORDER BY name")
}

// TypeGetForEvent returns entry types available to the given event.
func (a *adapter) TypeGetForEvent(event t.Uid) ([]t.EntryType, error) {
	cols := "et.id,et.createdat,et.updatedat,et.name,et.description,et.color_r,et.color_g,et.color_b,et.requireendtime"
	return a.typeSelect(
		"SELECT "+cols+" FROM entry_types et JOIN entry_type_events te ON te.typeid=et.id "+
			"WHERE te.eventid=? ORDER BY et.name", store.DecodeUid(event))
}

// TypeUpsert creates or updates an entry type, then reads the canonical
// record back.
func (a *adapter) TypeUpsert(et *t.EntryType) (*t.EntryType, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	decoded := store.DecodeUid(et.Uid())
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO entry_types(id,createdat,updatedat,name,description,color_r,color_g,color_b,requireendtime)
		VALUES(?,?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE updatedat=VALUES(updatedat),name=VALUES(name),
		description=VALUES(description),color_r=VALUES(color_r),color_g=VALUES(color_g),
		color_b=VALUES(color_b),requireendtime=VALUES(requireendtime)`,
		decoded, et.CreatedAt, et.UpdatedAt, et.Name, et.Description,
		et.Color.R, et.Color.G, et.Color.B, et.RequireEndTime)
	if err != nil {
		return nil, decodeError(err)
	}
	canonical, err := scanEntryType(a.db.QueryRowContext(ctx,
		"SELECT "+typeColumns+" FROM entry_types WHERE id=?", decoded))
	if err != nil {
		return nil, decodeError(err)
	}
	return canonical, nil
}

// TypeDelete deletes an entry type unless entries still reference it.
func (a *adapter) TypeDelete(id t.Uid) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	decoded := store.DecodeUid(id)

	var inUse int
	if err := a.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM entries WHERE typeid=?", decoded).Scan(&inUse); err != nil {
		return decodeError(err)
	}
	if inUse > 0 {
		return t.ErrFailed
	}

	res, err := a.db.ExecContext(ctx, "DELETE FROM entry_types WHERE id=?", decoded)
	if err == nil {
		if count, _ := res.RowsAffected(); count == 0 {
			err = t.ErrNotFound
		}
	}
	return decodeError(err)
}

// TypeEventGetAll returns all type-to-event availability pairs.
func (a *adapter) TypeEventGetAll() ([]t.TypeEventPair, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	rows, err := a.db.QueryContext(ctx, "SELECT typeid,eventid FROM entry_type_events LIMIT ?", a.maxResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []t.TypeEventPair
	for rows.Next() {
		var typeId, event int64
		if err = rows.Scan(&typeId, &event); err != nil {
			return nil, err
		}
		pairs = append(pairs, t.TypeEventPair{EntryType: store.EncodeUid(typeId), Event: store.EncodeUid(event)})
	}
	return pairs, rows.Err()
}

// TypeEventAdd makes an entry type available to an event.
func (a *adapter) TypeEventAdd(entryType, event t.Uid) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	_, err := a.db.ExecContext(ctx,
		"INSERT INTO entry_type_events(typeid,eventid) VALUES(?,?)",
		store.DecodeUid(entryType), store.DecodeUid(event))
	return decodeError(err)
}

// TypeEventRemove revokes an entry type from an event.
func (a *adapter) TypeEventRemove(entryType, event t.Uid) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	res, err := a.db.ExecContext(ctx,
		"DELETE FROM entry_type_events WHERE typeid=? AND eventid=?",
		store.DecodeUid(entryType), store.DecodeUid(event))
	if err == nil {
		if count, _ := res.RowsAffected(); count == 0 {
			err = t.ErrNotFound
		}
	}
	return decodeError(err)
}

// Tags.

// TagGetAll returns all tags.
func (a *adapter) TagGetAll() ([]t.Tag, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	rows, err := a.db.QueryContext(ctx,
		"SELECT id,createdat,updatedat,name,description FROM tags ORDER BY name LIMIT ?", a.maxResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []t.Tag
	for rows.Next() {
		var tg t.Tag
		var id int64
		if err = rows.Scan(&id, &tg.CreatedAt, &tg.UpdatedAt, &tg.Name, &tg.Description); err != nil {
			return nil, err
		}
		tg.SetUid(store.EncodeUid(id))
		tags = append(tags, tg)
	}
	return tags, rows.Err()
}

// TagUpsert creates or updates a tag.
func (a *adapter) TagUpsert(tag *t.Tag) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO tags(id,createdat,updatedat,name,description) VALUES(?,?,?,?,?)
		ON DUPLICATE KEY UPDATE updatedat=VALUES(updatedat),name=VALUES(name),
		description=VALUES(description)`,
		store.DecodeUid(tag.Uid()), tag.CreatedAt, tag.UpdatedAt, tag.Name, tag.Description)
	return decodeError(err)
}

// TagDelete deletes a tag, detaching it from all entries.
func (a *adapter) TagDelete(id t.Uid) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	res, err := a.db.ExecContext(ctx, "DELETE FROM tags WHERE id=?", store.DecodeUid(id))
	if err == nil {
		if count, _ := res.RowsAffected(); count == 0 {
			err = t.ErrNotFound
		}
	}
	return decodeError(err)
}

// TagReplaceForEvent retags all entries of the event from oldTag to newTag
// in a single transaction. Returns the number of entries changed.
func (a *adapter) TagReplaceForEvent(event, oldTag, newTag t.Uid) (int, error) {
	ctx, cancel := a.getContextForTx()
	if cancel != nil {
		defer cancel()
	}

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	decEvent := store.DecodeUid(event)
	decOld := store.DecodeUid(oldTag)
	decNew := store.DecodeUid(newTag)

	// Entries already carrying the new tag just drop the old one.
	dropped, err := tx.ExecContext(ctx,
		`DELETE et FROM entry_tags et
		JOIN entry_tags nt ON nt.entryid=et.entryid AND nt.tagid=?
		JOIN entries e ON e.id=et.entryid AND e.eventid=?
		WHERE et.tagid=?`,
		decNew, decEvent, decOld)
	if err != nil {
		return 0, decodeError(err)
	}

	retagged, err := tx.ExecContext(ctx,
		`UPDATE entry_tags et
		JOIN entries e ON e.id=et.entryid AND e.eventid=?
		SET et.tagid=? WHERE et.tagid=?`,
		decEvent, decNew, decOld)
	if err != nil {
		return 0, decodeError(err)
	}

	if err = tx.Commit(); err != nil {
		return 0, decodeError(err)
	}

	droppedCount, _ := dropped.RowsAffected()
	retaggedCount, _ := retagged.RowsAffected()
	return int(droppedCount + retaggedCount), nil
}

// Log entries.

const entryColumns = "id,createdat,updatedat,eventid,startat,endat,endincomplete,typeid," +
	"description,medialinks,submitter,videoedit,postermoment,notes,editorid,giveaway,sortkey,parentid"

func scanEntry(row scannable) (*t.LogEntry, error) {
	var entry t.LogEntry
	var id, event, typeId int64
	var endAt sql.NullTime
	var media []byte
	var videoEdit int
	var editor, parent sql.NullInt64
	var sortKey sql.NullInt32

	if err := row.Scan(&id, &entry.CreatedAt, &entry.UpdatedAt, &event, &entry.StartAt,
		&endAt, &entry.EndIncomplete, &typeId, &entry.Description, &media,
		&entry.SubmitterOrWinner, &videoEdit, &entry.PosterMoment, &entry.Notes,
		&editor, &entry.MissingGiveawayInfo, &sortKey, &parent); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	entry.SetUid(store.EncodeUid(id))
	entry.Event = store.EncodeUid(event)
	entry.EntryType = store.EncodeUid(typeId)
	entry.VideoEditState = t.VideoEditState(videoEdit)
	if endAt.Valid {
		end := endAt.Time
		entry.EndAt = &end
	}
	if len(media) > 0 {
		if err := json.Unmarshal(media, &entry.MediaLinks); err != nil {
			return nil, err
		}
	}
	if editor.Valid {
		uid := store.EncodeUid(editor.Int64)
		entry.Editor = &uid
	}
	if sortKey.Valid {
		key := sortKey.Int32
		entry.SortKey = &key
	}
	if parent.Valid {
		entry.Parent = store.EncodeUid(parent.Int64)
	}
	return &entry, nil
}

// entryArgs flattens the mutable entry fields into SQL arguments.
func entryArgs(entry *t.LogEntry) (media interface{}, editor, parent interface{}, err error) {
	if len(entry.MediaLinks) > 0 {
		var raw []byte
		if raw, err = json.Marshal(entry.MediaLinks); err != nil {
			return
		}
		media = raw
	}
	if entry.Editor != nil {
		editor = store.DecodeUid(*entry.Editor)
	}
	if !entry.Parent.IsZero() {
		parent = store.DecodeUid(entry.Parent)
	}
	return
}

// typeAvailable verifies the entry type has been made available to the event.
func typeAvailable(ctx context.Context, q queryEx, typeId, event int64) error {
	var available int
	if err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM entry_type_events WHERE typeid=? AND eventid=?",
		typeId, event).Scan(&available); err != nil {
		return err
	}
	if available == 0 {
		return t.ErrFailed
	}
	return nil
}

// insertHistory writes one audit row capturing the full entry state.
func insertHistory(ctx context.Context, q queryEx, entry *t.LogEntry) error {
	state, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	var editor interface{}
	if entry.Editor != nil {
		editor = store.DecodeUid(*entry.Editor)
	}
	_, err = q.ExecContext(ctx,
		"INSERT INTO entry_history(entryid,editorid,createdat,entry) VALUES(?,?,?,?)",
		store.DecodeUid(entry.Uid()), editor, t.TimeNow(), state)
	return err
}

// replaceEntryTags rewrites the entry's tag attachments.
func replaceEntryTags(ctx context.Context, q queryEx, entryId int64, tags []t.Tag) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM entry_tags WHERE entryid=?", entryId); err != nil {
		return err
	}
	for _, tag := range tags {
		if _, err := q.ExecContext(ctx, "INSERT INTO entry_tags(entryid,tagid) VALUES(?,?)",
			entryId, store.DecodeUid(tag.Uid())); err != nil {
			return err
		}
	}
	return nil
}

// entryGetOne reads one entry with its tags attached.
func (a *adapter) entryGetOne(ctx context.Context, q queryEx, entryId int64) (*t.LogEntry, error) {
	entry, err := scanEntry(q.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE id=?", entryId))
	if err != nil || entry == nil {
		return entry, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT tg.id,tg.createdat,tg.updatedat,tg.name,tg.description
		FROM tags tg JOIN entry_tags et ON et.tagid=tg.id WHERE et.entryid=? ORDER BY tg.name`, entryId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tg t.Tag
		var id int64
		if err = rows.Scan(&id, &tg.CreatedAt, &tg.UpdatedAt, &tg.Name, &tg.Description); err != nil {
			return nil, err
		}
		tg.SetUid(store.EncodeUid(id))
		entry.Tags = append(entry.Tags, tg)
	}
	return entry, rows.Err()
}

// EntryCreate inserts the entry with its tag attachments and a history row
// in one transaction, then reads the canonical record back.
func (a *adapter) EntryCreate(entry *t.LogEntry) (*t.LogEntry, error) {
	ctx, cancel := a.getContextForTx()
	if cancel != nil {
		defer cancel()
	}

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	entryId := store.DecodeUid(entry.Uid())
	event := store.DecodeUid(entry.Event)
	typeId := store.DecodeUid(entry.EntryType)

	if err = typeAvailable(ctx, tx, typeId, event); err != nil {
		return nil, decodeError(err)
	}

	media, editor, parent, err := entryArgs(entry)
	if err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO entries(`+entryColumns+`)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		entryId, entry.CreatedAt, entry.UpdatedAt, event, entry.StartAt,
		entry.EndAt, entry.EndIncomplete, typeId, entry.Description, media,
		entry.SubmitterOrWinner, int(entry.VideoEditState), entry.PosterMoment, entry.Notes,
		editor, entry.MissingGiveawayInfo, entry.SortKey, parent); err != nil {
		return nil, decodeError(err)
	}

	if err = replaceEntryTags(ctx, tx, entryId, entry.Tags); err != nil {
		return nil, decodeError(err)
	}

	canonical, err := a.entryGetOne(ctx, tx, entryId)
	if err != nil {
		return nil, decodeError(err)
	}

	if err = insertHistory(ctx, tx, canonical); err != nil {
		return nil, decodeError(err)
	}

	if err = tx.Commit(); err != nil {
		return nil, decodeError(err)
	}
	return canonical, nil
}

// EntryUpdate writes the listed parts of the entry plus a history row in one
// transaction, then reads the canonical record back.
func (a *adapter) EntryUpdate(entry *t.LogEntry, parts []string) (*t.LogEntry, error) {
	ctx, cancel := a.getContextForTx()
	if cancel != nil {
		defer cancel()
	}

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	entryId := store.DecodeUid(entry.Uid())
	media, editor, parent, err := entryArgs(entry)
	if err != nil {
		return nil, err
	}

	cols := []string{"updatedat=?"}
	args := []interface{}{entry.UpdatedAt}
	replaceTags := false

	for _, part := range parts {
		switch part {
		case "start":
			cols, args = append(cols, "startat=?"), append(args, entry.StartAt)
		case "end":
			cols, args = append(cols, "endat=?", "endincomplete=?"), append(args, entry.EndAt, entry.EndIncomplete)
		case "type":
			var event int64
			if err = tx.QueryRowContext(ctx, "SELECT eventid FROM entries WHERE id=?", entryId).Scan(&event); err != nil {
				if err == sql.ErrNoRows {
					err = t.ErrNotFound
				}
				return nil, decodeError(err)
			}
			if err = typeAvailable(ctx, tx, store.DecodeUid(entry.EntryType), event); err != nil {
				return nil, decodeError(err)
			}
			cols, args = append(cols, "typeid=?"), append(args, store.DecodeUid(entry.EntryType))
		case "description":
			cols, args = append(cols, "description=?"), append(args, entry.Description)
		case "media":
			cols, args = append(cols, "medialinks=?"), append(args, media)
		case "submitter":
			cols, args = append(cols, "submitter=?"), append(args, entry.SubmitterOrWinner)
		case "videoedit":
			cols, args = append(cols, "videoedit=?"), append(args, int(entry.VideoEditState))
		case "poster":
			cols, args = append(cols, "postermoment=?"), append(args, entry.PosterMoment)
		case "notes":
			cols, args = append(cols, "notes=?"), append(args, entry.Notes)
		case "editor":
			cols, args = append(cols, "editorid=?"), append(args, editor)
		case "giveaway":
			cols, args = append(cols, "giveaway=?"), append(args, entry.MissingGiveawayInfo)
		case "sortkey":
			cols, args = append(cols, "sortkey=?"), append(args, entry.SortKey)
		case "parent":
			cols, args = append(cols, "parentid=?"), append(args, parent)
		case "tags":
			replaceTags = true
		default:
			err = t.ErrMalformed
			return nil, err
		}
	}

	args = append(args, entryId)
	res, err := tx.ExecContext(ctx, "UPDATE entries SET "+strings.Join(cols, ",")+" WHERE id=?", args...)
	if err != nil {
		return nil, decodeError(err)
	}
	// MySQL reports 0 affected rows when nothing changed; check existence
	// separately to tell a no-op apart from a missing entry.
	if count, _ := res.RowsAffected(); count == 0 {
		var exists int
		if err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM entries WHERE id=?", entryId).Scan(&exists); err != nil {
			return nil, decodeError(err)
		}
		if exists == 0 {
			err = t.ErrNotFound
			return nil, err
		}
	}

	if replaceTags {
		if err = replaceEntryTags(ctx, tx, entryId, entry.Tags); err != nil {
			return nil, decodeError(err)
		}
	}

	canonical, err := a.entryGetOne(ctx, tx, entryId)
	if err != nil {
		return nil, decodeError(err)
	}

	if err = insertHistory(ctx, tx, canonical); err != nil {
		return nil, decodeError(err)
	}

	if err = tx.Commit(); err != nil {
		return nil, decodeError(err)
	}
	return canonical, nil
}

// EntryDelete deletes an entry. Child entries get their parent cleared.
// History rows are left in place as an audit trail.
func (a *adapter) EntryDelete(id t.Uid) error {
	ctx, cancel := a.getContextForTx()
	if cancel != nil {
		defer cancel()
	}

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	entryId := store.DecodeUid(id)
	if _, err = tx.ExecContext(ctx, "UPDATE entries SET parentid=NULL WHERE parentid=?", entryId); err != nil {
		return decodeError(err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE id=?", entryId)
	if err != nil {
		return decodeError(err)
	}
	if count, _ := res.RowsAffected(); count == 0 {
		err = t.ErrNotFound
		return err
	}

	return decodeError(tx.Commit())
}

// EntryGetAllForEvent returns the event's entries with tags attached,
// ordered by start time, then manual sort key with NULLs last, then
// creation time.
func (a *adapter) EntryGetAllForEvent(event t.Uid) ([]t.LogEntry, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}

	rows, err := a.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE eventid=? "+
			"ORDER BY startat, ISNULL(sortkey), sortkey, createdat LIMIT ?",
		store.DecodeUid(event), a.maxResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []t.LogEntry
	index := make(map[int64]int)
	var ids []interface{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		id := store.DecodeUid(entry.Uid())
		index[id] = len(entries)
		ids = append(ids, id)
		entries = append(entries, *entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(ids) == 0 {
		return entries, nil
	}

	// Attach tags in one pass.
	sqlStr, sqlArgs := expandQuery(
		`SELECT et.entryid,tg.id,tg.createdat,tg.updatedat,tg.name,tg.description
		FROM tags tg JOIN entry_tags et ON et.tagid=tg.id WHERE et.entryid IN (?) ORDER BY tg.name`, ids)
	tagRows, err := a.db.QueryContext(ctx, sqlStr, sqlArgs...)
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var entryId, tagId int64
		var tg t.Tag
		if err = tagRows.Scan(&entryId, &tagId, &tg.CreatedAt, &tg.UpdatedAt, &tg.Name, &tg.Description); err != nil {
			return nil, err
		}
		tg.SetUid(store.EncodeUid(tagId))
		if i, ok := index[entryId]; ok {
			entries[i].Tags = append(entries[i].Tags, tg)
		}
	}
	return entries, tagRows.Err()
}

// Editors.

// EditorGetAll returns all event-editor assignments.
func (a *adapter) EditorGetAll() ([]t.EditorPair, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	rows, err := a.db.QueryContext(ctx, "SELECT eventid,userid FROM editors LIMIT ?", a.maxResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []t.EditorPair
	for rows.Next() {
		var event, user int64
		if err = rows.Scan(&event, &user); err != nil {
			return nil, err
		}
		pairs = append(pairs, t.EditorPair{Event: store.EncodeUid(event), User: store.EncodeUid(user)})
	}
	return pairs, rows.Err()
}

// EditorGetForEvent returns the users assigned as editors of the event.
func (a *adapter) EditorGetForEvent(event t.Uid) ([]t.User, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	cols := "u.id,u.createdat,u.updatedat,u.name,u.isadmin,u.color_r,u.color_g,u.color_b"
	rows, err := a.db.QueryContext(ctx,
		"SELECT "+cols+" FROM users u JOIN editors e ON e.userid=u.id WHERE e.eventid=? ORDER BY u.name",
		store.DecodeUid(event))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []t.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// EditorAdd assigns a user as an editor of the event.
func (a *adapter) EditorAdd(event, user t.Uid) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	_, err := a.db.ExecContext(ctx, "INSERT INTO editors(eventid,userid) VALUES(?,?)",
		store.DecodeUid(event), store.DecodeUid(user))
	return decodeError(err)
}

// EditorRemove removes an editor assignment.
func (a *adapter) EditorRemove(event, user t.Uid) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	res, err := a.db.ExecContext(ctx, "DELETE FROM editors WHERE eventid=? AND userid=?",
		store.DecodeUid(event), store.DecodeUid(user))
	if err == nil {
		if count, _ := res.RowsAffected(); count == 0 {
			err = t.ErrNotFound
		}
	}
	return decodeError(err)
}

// Event log tabs.

const tabColumns = "id,createdat,updatedat,eventid,name,startat"

func scanTab(row scannable) (*t.Tab, error) {
	var tab t.Tab
	var id, event int64
	if err := row.Scan(&id, &tab.CreatedAt, &tab.UpdatedAt, &event, &tab.Name, &tab.StartAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	tab.SetUid(store.EncodeUid(id))
	tab.Event = store.EncodeUid(event)
	return &tab, nil
}

func (a *adapter) tabSelect(query string, args ...interface{}) ([]t.Tab, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tabs []t.Tab
	for rows.Next() {
		tab, err := scanTab(rows)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, *tab)
	}
	return tabs, rows.Err()
}

// TabGetAll returns all tabs across all events.
func (a *adapter) TabGetAll() ([]t.Tab, error) {
	return a.tabSelect("SELECT "+tabColumns+" FROM event_log_tabs ORDER BY startat LIMIT ?", a.maxResults)
}

// TabGetForEvent returns the event's tabs ordered by start time.
func (a *adapter) TabGetForEvent(event t.Uid) ([]t.Tab, error) {
	return a.tabSelect("SELECT "+tabColumns+" FROM event_log_tabs WHERE eventid=? ORDER BY startat",
		store.DecodeUid(event))
}

// TabUpsert creates or updates a tab, then reads the canonical record back.
func (a *adapter) TabUpsert(tab *t.Tab) (*t.Tab, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	decoded := store.DecodeUid(tab.Uid())
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO event_log_tabs(id,createdat,updatedat,eventid,name,startat) VALUES(?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE updatedat=VALUES(updatedat),name=VALUES(name),startat=VALUES(startat)`,
		decoded, tab.CreatedAt, tab.UpdatedAt, store.DecodeUid(tab.Event), tab.Name, tab.StartAt)
	if err != nil {
		return nil, decodeError(err)
	}
	canonical, err := scanTab(a.db.QueryRowContext(ctx,
		"SELECT "+tabColumns+" FROM event_log_tabs WHERE id=?", decoded))
	if err != nil {
		return nil, decodeError(err)
	}
	return canonical, nil
}

// TabDelete deletes a tab.
func (a *adapter) TabDelete(id t.Uid) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	res, err := a.db.ExecContext(ctx, "DELETE FROM event_log_tabs WHERE id=?", store.DecodeUid(id))
	if err == nil {
		if count, _ := res.RowsAffected(); count == 0 {
			err = t.ErrNotFound
		}
	}
	return decodeError(err)
}

// Info pages.

const pageColumns = "id,createdat,updatedat,eventid,title,contents"

func scanPage(row scannable) (*t.InfoPage, error) {
	var page t.InfoPage
	var id, event int64
	if err := row.Scan(&id, &page.CreatedAt, &page.UpdatedAt, &event, &page.Title, &page.Contents); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	page.SetUid(store.EncodeUid(id))
	page.Event = store.EncodeUid(event)
	return &page, nil
}

func (a *adapter) pageSelect(query string, args ...interface{}) ([]t.InfoPage, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []t.InfoPage
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}
	return pages, rows.Err()
}

// PageGetAll returns all info pages across all events.
func (a *adapter) PageGetAll() ([]t.InfoPage, error) {
	return a.pageSelect("SELECT "+pageColumns+" FROM info_pages ORDER BY title LIMIT ?", a.maxResults)
}

// PageGetForEvent returns the event's info pages.
func (a *adapter) PageGetForEvent(event t.Uid) ([]t.InfoPage, error) {
	return a.pageSelect("SELECT "+pageColumns+" FROM info_pages WHERE eventid=? ORDER BY title",
		store.DecodeUid(event))
}

// PageUpsert creates or updates an info page, then reads the canonical
// record back.
func (a *adapter) PageUpsert(page *t.InfoPage) (*t.InfoPage, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	decoded := store.DecodeUid(page.Uid())
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO info_pages(id,createdat,updatedat,eventid,title,contents) VALUES(?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE updatedat=VALUES(updatedat),title=VALUES(title),contents=VALUES(contents)`,
		decoded, page.CreatedAt, page.UpdatedAt, store.DecodeUid(page.Event), page.Title, page.Contents)
	if err != nil {
		return nil, decodeError(err)
	}
	canonical, err := scanPage(a.db.QueryRowContext(ctx,
		"SELECT "+pageColumns+" FROM info_pages WHERE id=?", decoded))
	if err != nil {
		return nil, decodeError(err)
	}
	return canonical, nil
}

// PageDelete deletes an info page.
func (a *adapter) PageDelete(id t.Uid) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	res, err := a.db.ExecContext(ctx, "DELETE FROM info_pages WHERE id=?", store.DecodeUid(id))
	if err == nil {
		if count, _ := res.RowsAffected(); count == 0 {
			err = t.ErrNotFound
		}
	}
	return decodeError(err)
}

// Applications.

// The auth key itself is never selected. Revoked is derived from it being unset.
const appColumns = "id,createdat,updatedat,name,readlog,writelinks,(authkey IS NULL)"

func scanApp(row scannable) (*t.Application, error) {
	var app t.Application
	var id int64
	if err := row.Scan(&id, &app.CreatedAt, &app.UpdatedAt, &app.Name,
		&app.ReadLog, &app.WriteLinks, &app.Revoked); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	app.SetUid(store.EncodeUid(id))
	return &app, nil
}

// AppGetAll returns all registered applications.
func (a *adapter) AppGetAll() ([]t.Application, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	rows, err := a.db.QueryContext(ctx,
		"SELECT "+appColumns+" FROM applications ORDER BY name LIMIT ?", a.maxResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []t.Application
	for rows.Next() {
		app, err := scanApp(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// AppUpsert creates or updates an application record, then reads the
// canonical record back. The auth key column is left untouched.
func (a *adapter) AppUpsert(app *t.Application) (*t.Application, error) {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	decoded := store.DecodeUid(app.Uid())
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO applications(id,createdat,updatedat,name,readlog,writelinks) VALUES(?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE updatedat=VALUES(updatedat),name=VALUES(name),
		readlog=VALUES(readlog),writelinks=VALUES(writelinks)`,
		decoded, app.CreatedAt, app.UpdatedAt, app.Name, app.ReadLog, app.WriteLinks)
	if err != nil {
		return nil, decodeError(err)
	}
	canonical, err := scanApp(a.db.QueryRowContext(ctx,
		"SELECT "+appColumns+" FROM applications WHERE id=?", decoded))
	if err != nil {
		return nil, decodeError(err)
	}
	return canonical, nil
}

// AppSetKey replaces the application's auth key. A nil key revokes access.
func (a *adapter) AppSetKey(id t.Uid, key []byte) error {
	ctx, cancel := a.getContext()
	if cancel != nil {
		defer cancel()
	}
	res, err := a.db.ExecContext(ctx, "UPDATE applications SET updatedat=?,authkey=? WHERE id=?",
		t.TimeNow(), key, store.DecodeUid(id))
	if err == nil {
		if count, _ := res.RowsAffected(); count == 0 {
			err = t.ErrNotFound
		}
	}
	return decodeError(err)
}

// expandQuery flattens slice arguments into the query's IN clauses.
func expandQuery(query string, args ...interface{}) (string, []interface{}) {
	expandedQuery, expandedArgs, _ := sqlx.In(query, args...)
	return expandedQuery, expandedArgs
}

// decodeError translates a MySQL error into a store error where a specific
// mapping exists.
func decodeError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(t.StoreError); ok {
		return err
	}
	if myerr, ok := err.(*ms.MySQLError); ok {
		switch myerr.Number {
		case 1062:
			// Duplicate entry ... for key ...
			return t.ErrDuplicate
		case 1452:
			// Cannot add or update a child row: a foreign key constraint fails.
			return t.ErrNotFound
		}
	}
	return err
}

// Check if the error is Error 1049: Unknown database.
func isMissingDb(err error) bool {
	myerr, ok := err.(*ms.MySQLError)
	return ok && myerr.Number == 1049
}

// Check if the error is Error 1146: Table ... doesn't exist.
func isMissingTable(err error) bool {
	myerr, ok := err.(*ms.MySQLError)
	return ok && myerr.Number == 1146
}

func init() {
	store.RegisterAdapter(&adapter{})
}
