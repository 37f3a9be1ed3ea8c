// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gssoc-leaderbot/internal/bot"
	"gssoc-leaderbot/internal/config"
	"gssoc-leaderbot/internal/gateway"
	"gssoc-leaderbot/internal/logger"
	"gssoc-leaderbot/internal/usecase"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connects to Discord and serves bot commands until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.Env)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		fetcher, err := gateway.NewGitHubGateway(cfg.GitHubToken, log)
		if err != nil {
			return err
		}
		aggregator := usecase.NewAggregator(fetcher, log)

		session, err := discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			return fmt.Errorf("failed to create discord session: %w", err)
		}
		session.Identify.Intents = discordgo.IntentGuilds |
			discordgo.IntentGuildMessages |
			discordgo.IntentGuildMessageReactions |
			discordgo.IntentMessageContent

		dispatcher := bot.NewDispatcher(session, fetcher, aggregator, log)
		session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
			dispatcher.HandleMessage(m)
		})

		if err := session.Open(); err != nil {
			return fmt.Errorf("failed to open discord session: %w", err)
		}
		defer session.Close()
		dispatcher.SetBotID(session.State.User.ID)
		log.Info("bot is online", zap.String("user", session.State.User.Username))

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Info("shutting down")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
