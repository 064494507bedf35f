package gateway

// 众筹根合约ABI定义
const crowdfundingABI = `[
	{
		"inputs": [
			{"name": "minimumContribution", "type": "uint256"},
			{"name": "deadline", "type": "uint256"},
			{"name": "targetContribution", "type": "uint256"},
			{"name": "projectTitle", "type": "string"},
			{"name": "projectDesc", "type": "string"}
		],
		"name": "createProject",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "returnAllProjects",
		"outputs": [{"name": "", "type": "address[]"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [{"name": "projectAddress", "type": "address"}],
		"name": "contribute",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "projectContractAddress", "type": "address"},
			{"indexed": true, "name": "creator", "type": "address"},
			{"indexed": false, "name": "minContribution", "type": "uint256"},
			{"indexed": false, "name": "projectDeadline", "type": "uint256"},
			{"indexed": false, "name": "goalAmount", "type": "uint256"},
			{"indexed": false, "name": "currentAmount", "type": "uint256"},
			{"indexed": false, "name": "title", "type": "string"},
			{"indexed": false, "name": "desc", "type": "string"},
			{"indexed": false, "name": "balance", "type": "uint256"}
		],
		"name": "ProjectStarted",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": false, "name": "projectAddress", "type": "address"},
			{"indexed": false, "name": "contributedAmount", "type": "uint256"},
			{"indexed": true, "name": "contributor", "type": "address"}
		],
		"name": "ContributionReceived",
		"type": "event"
	}
]`

// 项目合约ABI定义
const projectABI = `[
	{
		"inputs": [],
		"name": "getProjectDetails",
		"outputs": [
			{"name": "creator", "type": "address"},
			{"name": "minimumContribution", "type": "uint256"},
			{"name": "deadline", "type": "uint256"},
			{"name": "targetContribution", "type": "uint256"},
			{"name": "raisedAmount", "type": "uint256"},
			{"name": "title", "type": "string"},
			{"name": "description", "type": "string"},
			{"name": "balance", "type": "uint256"}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "description", "type": "string"},
			{"name": "amount", "type": "uint256"},
			{"name": "recipient", "type": "address"}
		],
		"name": "createWithdrawRequest",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [{"name": "requestId", "type": "uint256"}],
		"name": "voteWithdrawRequest",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [{"name": "requestId", "type": "uint256"}],
		"name": "withdrawRequestedAmount",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "numOfWithdrawRequests",
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [{"name": "", "type": "uint256"}],
		"name": "withdrawRequests",
		"outputs": [
			{"name": "description", "type": "string"},
			{"name": "amount", "type": "uint256"},
			{"name": "noOfVotes", "type": "uint256"},
			{"name": "isCompleted", "type": "bool"},
			{"name": "recipient", "type": "address"}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "contributor", "type": "address"},
			{"indexed": false, "name": "amount", "type": "uint256"},
			{"indexed": false, "name": "currentTotal", "type": "uint256"}
		],
		"name": "FundingReceived",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "requestId", "type": "uint256"},
			{"indexed": false, "name": "description", "type": "string"},
			{"indexed": false, "name": "amount", "type": "uint256"},
			{"indexed": false, "name": "noOfVotes", "type": "uint256"},
			{"indexed": false, "name": "isCompleted", "type": "bool"},
			{"indexed": false, "name": "recipient", "type": "address"}
		],
		"name": "WithdrawRequestCreated",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "requestId", "type": "uint256"},
			{"indexed": false, "name": "amount", "type": "uint256"},
			{"indexed": false, "name": "noOfVotes", "type": "uint256"},
			{"indexed": false, "name": "recipient", "type": "address"}
		],
		"name": "AmountWithdrawSuccessful",
		"type": "event"
	}
]`
