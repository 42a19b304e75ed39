package dispatch

// Menu is printed before every choice.
const Menu = `Select an operation to perform:
        1: Set up a trustline
        2: Issue an asset
        3: Make a payment
        4: Manage buy offer
        5: Manage sell offer
        6: Stream payments
        7: Handle preconditions
        8: Pathfinding
        9: Payment Channel
        0: Exit
        Enter your choice: `

// Field prompts, in collection order per choice.
const (
	promptAssetCode     = "Enter the asset code (e.g., USD): "
	promptIssuer        = "Enter the asset issuer public key: "
	promptIssueAmount   = "Enter the amount to issue: "
	promptPayAmount     = "Enter the amount to pay: "
	promptBuySelling    = "Enter the asset code you are selling (e.g., XLM): "
	promptSellSelling   = "Enter the asset code you are selling (e.g., USD): "
	promptSellingIssuer = "Enter the asset issuer public key for the selling asset: "
	promptBuyBuying     = "Enter the asset code you are buying (e.g., USD): "
	promptSellBuying    = "Enter the asset code you are buying (e.g., XLM): "
	promptBuyingIssuer  = "Enter the asset issuer public key for the buying asset: "
	promptBuyAmount     = "Enter the amount to buy: "
	promptSellAmount    = "Enter the amount to sell: "
	promptPrice         = "Enter the price per unit: "
	promptOfferID       = "Enter the offer ID (use 0 for a new offer): "
	promptMinTime       = "Enter the minimum time (UNIX timestamp): "
	promptMaxTime       = "Enter the maximum time (UNIX timestamp): "
	promptSendAmount    = "Enter the amount to send: "
	promptPathAmount    = "Enter the amount to find a path for: "
	promptRecipient     = "Enter the recipient public key: "
	promptBalanceA      = "Enter the starting balance for client A: "
	promptBalanceB      = "Enter the starting balance for client B: "
)

const (
	msgInvalidChoice = "Invalid choice, please try again."
	msgStreamError   = "An error occurred!"
)
