package commands

import (
	"fmt"

	"github.com/Harshal6927/advanced-alchemy/base"
	"github.com/Harshal6927/advanced-alchemy/config"
	"github.com/Harshal6927/advanced-alchemy/logger"
	"github.com/Harshal6927/advanced-alchemy/session"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DatabaseCommandHandler encapsulates logic for managing the application
// database schema via CLI.
type DatabaseCommandHandler struct {
	logger logger.Logger
}

// NewDatabaseCommandHandler initializes and returns a DatabaseCommandHandler
// instance with a configured logger.
func NewDatabaseCommandHandler() (*DatabaseCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &DatabaseCommandHandler{
		logger: loggerInstance,
	}, nil
}

// openDatabase loads settings from the file named by the config flag and
// opens the configured database
func (commandHandler *DatabaseCommandHandler) openDatabase(cmd *cobra.Command) (*gorm.DB, *config.AppSettings, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config flag: %w", err)
	}

	settings, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	db, err := session.Open(settings.Database, commandHandler.logger)
	if err != nil {
		return nil, nil, err
	}

	return db, settings, nil
}

func (commandHandler *DatabaseCommandHandler) closeDatabase(db *gorm.DB) {
	if err := session.Close(db); err != nil {
		commandHandler.logger.Warn("Failed to close database connection ", err)
	}
}

// CreateAllCmd creates the tables of every model registered under the selected bind key
func (commandHandler *DatabaseCommandHandler) CreateAllCmd(cmd *cobra.Command, _ []string) {
	bindKey, err := cmd.Flags().GetString("bind-key")
	if err != nil {
		commandHandler.logger.Error("invalid bind-key flag ", err)
		return
	}

	db, _, err := commandHandler.openDatabase(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer commandHandler.closeDatabase(db)

	models := base.DefaultRegistry().Models(bindKey)
	if len(models) == 0 {
		commandHandler.logger.Warn("No models registered for bind key ", bindKey)
		return
	}

	if err := base.DefaultRegistry().CreateAll(db, bindKey); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Created tables for ", len(models), " registered models")
}

// DropAllCmd drops every table of the configured database
func (commandHandler *DatabaseCommandHandler) DropAllCmd(cmd *cobra.Command, _ []string) {
	db, _, err := commandHandler.openDatabase(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer commandHandler.closeDatabase(db)

	tables, err := db.Migrator().GetTables()
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	for _, table := range tables {
		if err := db.Migrator().DropTable(table); err != nil {
			commandHandler.logger.Error(err)
			return
		}
	}

	commandHandler.logger.Info("Dropped ", len(tables), " tables")
}

// TruncateCmd deletes every row from every table of the configured database
func (commandHandler *DatabaseCommandHandler) TruncateCmd(cmd *cobra.Command, _ []string) {
	db, _, err := commandHandler.openDatabase(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer commandHandler.closeDatabase(db)

	tables, err := db.Migrator().GetTables()
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	for _, table := range tables {
		if err := db.Exec("DELETE FROM ?", clause.Table{Name: table}).Error; err != nil {
			commandHandler.logger.Error(err)
			return
		}
	}

	commandHandler.logger.Info("Truncated ", len(tables), " tables")
}

// ShowConfigCmd prints the active database configuration
func (commandHandler *DatabaseCommandHandler) ShowConfigCmd(cmd *cobra.Command, _ []string) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		commandHandler.logger.Error("invalid config flag ", err)
		return
	}

	settings, err := config.Load(configPath)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	cmd.Printf("config file:   %s\n", configPath)
	cmd.Printf("database type: %s\n", settings.Database.Type)
	cmd.Printf("database name: %s\n", settings.Database.DBName)
	cmd.Printf("dsn:           %s\n", settings.Database.DSN)
	cmd.Printf("commit mode:   %s\n", settings.Session.CommitMode)
	cmd.Printf("session key:   %s\n", settings.Session.SessionKey)
	cmd.Printf("engine key:    %s\n", settings.Session.EngineKey)
}

// InitDatabaseCommands registers database management commands
func InitDatabaseCommands(rootCmd *cobra.Command) error {
	handler, err := NewDatabaseCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create database command handler %w", err)
	}

	var databaseCmd = &cobra.Command{
		Use:   "database",
		Short: "Manage the application database schema",
	}

	var createAllCmd = &cobra.Command{
		Use:   "create-all",
		Short: "Create tables for all registered models",
		Run:   handler.CreateAllCmd,
	}
	createAllCmd.Flags().StringP("config", "", "configs/app.yaml", "Path to the application config file")
	createAllCmd.Flags().StringP("bind-key", "", base.DefaultBindKey, "Registry bind key selecting the models to create")
	databaseCmd.AddCommand(createAllCmd)

	var dropAllCmd = &cobra.Command{
		Use:   "drop-all",
		Short: "Drop every table of the configured database",
		Run:   handler.DropAllCmd,
	}
	dropAllCmd.Flags().StringP("config", "", "configs/app.yaml", "Path to the application config file")
	databaseCmd.AddCommand(dropAllCmd)

	var truncateCmd = &cobra.Command{
		Use:   "truncate",
		Short: "Delete all rows from every table",
		Run:   handler.TruncateCmd,
	}
	truncateCmd.Flags().StringP("config", "", "configs/app.yaml", "Path to the application config file")
	databaseCmd.AddCommand(truncateCmd)

	var showConfigCmd = &cobra.Command{
		Use:   "show-config",
		Short: "Print the active database configuration",
		Run:   handler.ShowConfigCmd,
	}
	showConfigCmd.Flags().StringP("config", "", "configs/app.yaml", "Path to the application config file")
	databaseCmd.AddCommand(showConfigCmd)

	rootCmd.AddCommand(databaseCmd)

	return nil
}
