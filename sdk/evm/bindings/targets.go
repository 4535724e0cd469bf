package bindings

// ITreasuryABI is the registration interface of the Kolektivo treasury.
const ITreasuryABI = `[
	{"type":"function","name":"registerERC20","stateMutability":"nonpayable","inputs":[{"name":"erc20","type":"address"},{"name":"oracle","type":"address"},{"name":"assetType","type":"uint8"},{"name":"riskLevel","type":"uint8"}],"outputs":[]},
	{"type":"function","name":"deregisterERC20","stateMutability":"nonpayable","inputs":[{"name":"erc20","type":"address"}],"outputs":[]},
	{"type":"function","name":"registerERC721Id","stateMutability":"nonpayable","inputs":[{"name":"erc721","type":"address"},{"name":"id","type":"uint256"},{"name":"oracle","type":"address"}],"outputs":[]},
	{"type":"function","name":"deregisterERC721Id","stateMutability":"nonpayable","inputs":[{"name":"erc721","type":"address"},{"name":"id","type":"uint256"}],"outputs":[]}
]`

// IReserveABI is the registration interface of the Kolektivo reserve.
const IReserveABI = `[
	{"type":"function","name":"registerERC20","stateMutability":"nonpayable","inputs":[{"name":"erc20","type":"address"},{"name":"oracle","type":"address"},{"name":"assetType","type":"uint8"},{"name":"riskLevel","type":"uint8"}],"outputs":[]},
	{"type":"function","name":"deregisterERC20","stateMutability":"nonpayable","inputs":[{"name":"erc20","type":"address"}],"outputs":[]},
	{"type":"function","name":"setMinBacking","stateMutability":"nonpayable","inputs":[{"name":"minBacking","type":"uint256"}],"outputs":[]}
]`
