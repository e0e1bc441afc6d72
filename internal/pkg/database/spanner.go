package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"cloud.google.com/go/spanner"
	dbadmin "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instadmin "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var databasePathRE = regexp.MustCompile(`^projects/([^/]+)/instances/([^/]+)/databases/([^/]+)$`)

// SpannerPath is a parsed Spanner database resource name.
type SpannerPath struct {
	Project  string
	Instance string
	Database string
}

// ParseSpannerPath parses projects/P/instances/I/databases/D.
func ParseSpannerPath(path string) (SpannerPath, error) {
	m := databasePathRE.FindStringSubmatch(path)
	if m == nil {
		return SpannerPath{}, fmt.Errorf("invalid spanner database path %q", path)
	}
	return SpannerPath{Project: m[1], Instance: m[2], Database: m[3]}, nil
}

func (p SpannerPath) InstancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", p.Project, p.Instance)
}

func (p SpannerPath) String() string {
	return p.InstancePath() + "/databases/" + p.Database
}

// OpenSpanner creates a Spanner data client.
func OpenSpanner(ctx context.Context, database string, logger *zap.Logger) (*spanner.Client, error) {
	client, err := spanner.NewClient(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}
	logger.Info("database connected", zap.String("driver", "spanner"), zap.String("database", database),
		zap.Bool("emulator", os.Getenv("SPANNER_EMULATOR_HOST") != ""))
	return client, nil
}

// PingSpanner runs a trivial query.
func PingSpanner(ctx context.Context, client *spanner.Client) error {
	iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	defer iter.Stop()
	_, err := iter.Next()
	return err
}

// SpannerMigrator creates the instance (emulator only) and database when
// missing, then applies every *.sql DDL file in a directory in name order.
type SpannerMigrator struct {
	path   SpannerPath
	dir    string
	logger *zap.Logger
}

func NewSpannerMigrator(database, dir string, logger *zap.Logger) (*SpannerMigrator, error) {
	path, err := ParseSpannerPath(database)
	if err != nil {
		return nil, err
	}
	return &SpannerMigrator{path: path, dir: dir, logger: logger}, nil
}

func (m *SpannerMigrator) Run(ctx context.Context) error {
	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		if err := m.ensureInstance(ctx); err != nil {
			return fmt.Errorf("failed to ensure instance: %w", err)
		}
	}
	if err := m.ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := m.applyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (m *SpannerMigrator) ensureInstance(ctx context.Context) error {
	admin, err := instadmin.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.path.InstancePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check instance: %w", err)
	}

	m.logger.Info("creating spanner instance", zap.String("instance", m.path.InstancePath()))
	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + m.path.Project,
		InstanceId: m.path.Instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", m.path.Project),
			DisplayName: m.path.Instance,
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("failed to wait for instance creation: %w", err)
	}
	return nil
}

func (m *SpannerMigrator) ensureDatabase(ctx context.Context) error {
	admin, err := dbadmin.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.path.String()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check database: %w", err)
	}

	m.logger.Info("creating spanner database", zap.Stringer("database", m.path))
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.path.InstancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.path.Database),
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

// applyMigrations skips statements whose object already exists so that
// re-running the command is harmless.
func (m *SpannerMigrator) applyMigrations(ctx context.Context) error {
	files, err := filepath.Glob(filepath.Join(m.dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		m.logger.Warn("no migration files found", zap.String("dir", m.dir))
		return nil
	}

	admin, err := dbadmin.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		for _, stmt := range SplitDDLStatements(string(content)) {
			op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
				Database:   m.path.String(),
				Statements: []string{stmt},
			})
			if err == nil {
				err = op.Wait(ctx)
			}
			if err != nil {
				if isAlreadyExists(err) {
					m.logger.Debug("ddl already applied", zap.String("file", filepath.Base(file)))
					continue
				}
				return fmt.Errorf("failed to apply DDL from %s: %w", filepath.Base(file), err)
			}
		}
		m.logger.Info("applied migration", zap.String("file", filepath.Base(file)))
	}
	return nil
}

func isAlreadyExists(err error) bool {
	if status.Code(err) == codes.AlreadyExists || spanner.ErrCode(err) == codes.AlreadyExists {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate name in schema")
}

// SplitDDLStatements drops blank and -- comment lines and splits on semicolons.
func SplitDDLStatements(content string) []string {
	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}
