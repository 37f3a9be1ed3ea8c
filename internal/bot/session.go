package bot

import "github.com/bwmarrin/discordgo"

// Session is the slice of *discordgo.Session behavior the dispatcher uses.
// Narrowing the dependency keeps the dispatcher testable without a live
// gateway connection.
type Session interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	AddHandler(handler interface{}) func()
}
